package core

import "context"

// Rating 是一条用户评分，评分值固定落在 [1,5]。
// 全量评分既是协同过滤模型的训练矩阵，也定义了每个用户的
// "已看过" 集合（协同召回要把它们排除掉）。
type Rating struct {
	UserID  int64
	MovieID int64
	Rating  float64
}

// 评分刻度。离线训练（SVD）与在线预测的裁剪都以它为准。
const (
	RatingMin = 1.0
	RatingMax = 5.0
)

// RatingStore 是评分数据的领域接口。
// 评分由离线任务周期性地从线上评论库导出，请求期间只读。
type RatingStore interface {
	// Name 返回评分后端名称（用于日志/监控）
	Name() string

	// UserRatings 返回某用户的全部评分；没有评分时返回空切片，不是错误
	UserRatings(ctx context.Context, userID int64) ([]Rating, error)
}

// RatedIDs 把评分列表折叠成已评分影片 ID 集合。
func RatedIDs(ratings []Rating) map[int64]struct{} {
	out := make(map[int64]struct{}, len(ratings))
	for _, r := range ratings {
		out[r.MovieID] = struct{}{}
	}
	return out
}

// TopRated 返回评分最高的一条；多条并列最高分时取影片 ID 最小的。
// 并列规则必须显式：种子影片决定整条内容召回分支，不能依赖
// 评分表的存储顺序。
func TopRated(ratings []Rating) (Rating, bool) {
	if len(ratings) == 0 {
		return Rating{}, false
	}
	best := ratings[0]
	for _, r := range ratings[1:] {
		if r.Rating > best.Rating || (r.Rating == best.Rating && r.MovieID < best.MovieID) {
			best = r
		}
	}
	return best, true
}
