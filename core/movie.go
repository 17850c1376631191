package core

import "context"

// Movie 是影片目录中的一行，由离线任务从内容方 API 导出。
// 对本库而言只读；Features 是内容相似度建模用的文本特征拼接
// （简介 + 加权类型词），在线侧只透传、不解析。
type Movie struct {
	ID         int64
	Title      string
	Features   string  // 离线 "soup"：overview + genres*3
	Genres     string  // 逗号分隔
	Language   string  // 原始语言，例如 "en" / "ja"
	Popularity float64 // 内容方热度，趋势榜排序用
}

// CatalogStore 是影片目录的领域接口。
//
// 设计原则：
//   - 接口定义在领域层（core），由基础设施层（store）实现
//   - 目录在进程启动时从离线制品整体载入，请求期间只读
//
// 标题不保证唯一：按标题查找时返回首条匹配，这一点与
// 相似度索引的 title→row 映射保持同一约定。
type CatalogStore interface {
	// Name 返回目录后端名称（用于日志/监控）
	Name() string

	// AllMovies 返回全部目录行，顺序与载入顺序一致（决定性排序依赖它）
	AllMovies(ctx context.Context) ([]Movie, error)

	// MovieByID 按影片 ID 查找
	MovieByID(ctx context.Context, id int64) (Movie, error)

	// MovieByTitle 按标题查找，重复标题返回首条
	MovieByTitle(ctx context.Context, title string) (Movie, error)
}

// ErrMovieNotFound 表示目录中不存在该影片。
var ErrMovieNotFound = NewDomainError(ModuleCatalog, ErrorCodeNotFound, "catalog: movie not found")

// IsMovieNotFound 检查错误是否为影片不存在。
func IsMovieNotFound(err error) bool {
	domainErr := GetDomainError(err)
	return domainErr != nil && domainErr.Module == ModuleCatalog && domainErr.Code == ErrorCodeNotFound
}
