package rerank

import (
	"context"

	"github.com/cinematch/cinekit/core"
	"github.com/cinematch/cinekit/pipeline"
)

// TopNNode 在排序之后截取前 N 个候选。
//
// 使用场景：
//   - 混合融合后只把 Top 10 返回给仪表盘
//   - 配合多样性重排控制栏目长度
type TopNNode struct {
	// N 要保留的候选数量；N <= 0 表示不截断
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
