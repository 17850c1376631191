package pipeline

import (
	"context"

	"github.com/cinematch/cinekit/core"
)

// Pipeline 把推荐逻辑拆成可组合的 Node 链：
// 召回 fan-out → 融合排序 → 截断 → 格式化，每一步都是一个 Node。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
