package core

import "github.com/cinematch/cinekit/pkg/utils"

// RecommendContext 承载一次推荐请求的用户/场景信息，贯穿整个 Pipeline 透传。
// 请求期间所有输入数据（目录、评分、相似度矩阵、预测模型）都是只读的，
// 唯一的可变状态是链路里逐节点传递的 items，因此并发请求之间无需加锁。
type RecommendContext struct {
	UserID int64
	Scene  string // dashboard / detail / search ...

	// User 是强类型用户画像；为空表示本次请求无画像（冷启动等）
	User *UserProfile

	// Labels 是用户级标签，可驱动整个 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级上下文参数（分页、地区、实验参数等）
	Params map[string]any
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
