package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 调用方通过 IsXXX 检查函数判断错误种类，不做字符串匹配
//
// 使用场景：
//   - Store 错误：NOT_FOUND
//   - 相似度索引：标题模糊匹配低于阈值（NOT_FOUND，可上报、非致命）
//   - 制品加载失败：UNAVAILABLE（调用方借此一次性关闭推荐功能）
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "UNAVAILABLE"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "similarity"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError，如果不是则返回 nil。
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeUnavailable   = "UNAVAILABLE"    // 服务/制品不可用
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误
)

// 模块名称常量
const (
	ModuleStore      = "store"      // 存储模块
	ModuleCatalog    = "catalog"    // 影片目录
	ModuleSimilarity = "similarity" // 内容相似度索引
	ModuleArtifact   = "artifact"   // 离线制品加载
	ModuleProfile    = "profile"    // 用户画像
)

// IsNotFound 检查错误是否为 NOT_FOUND。
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsUnavailable 检查错误是否为 UNAVAILABLE。
func IsUnavailable(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUnavailable
	}
	return false
}

// ErrTitleNotFound 是标题模糊匹配失败的哨兵错误：查询串与目录里
// 任何标题的相似度都没过阈值。这是可上报的正常结果，不是异常——
// 调用方拿到它时应展示空列表而不是失败整个请求。
var ErrTitleNotFound = NewDomainError(ModuleSimilarity, ErrorCodeNotFound, "similarity: no title matched the query")

// IsTitleNotFound 检查错误是否为标题匹配失败。
func IsTitleNotFound(err error) bool {
	domainErr := GetDomainError(err)
	return domainErr != nil && domainErr.Module == ModuleSimilarity && domainErr.Code == ErrorCodeNotFound
}

// Store 错误定义

// ErrStoreNotFound 表示 key 不存在。
var ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")

// IsStoreNotFound 检查错误是否为 key 不存在。
func IsStoreNotFound(err error) bool {
	domainErr := GetDomainError(err)
	return domainErr != nil && domainErr.Module == ModuleStore && domainErr.Code == ErrorCodeNotFound
}
