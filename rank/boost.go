package rank

import (
	"context"

	"github.com/cinematch/cinekit/core"
	"github.com/cinematch/cinekit/pipeline"
	"github.com/cinematch/cinekit/pkg/dsl"
	"github.com/cinematch/cinekit/pkg/utils"
)

// BoostNode 按 CEL 规则给命中的候选乘一个调权系数，
// 用于仪表盘栏目级的人工调优（比如压低趋势召回、抬高偏好类型）。
// 规则在构建时编译一次，请求期间只求值。
type BoostNode struct {
	Rule   *dsl.Rule
	Factor float64
}

// NewBoostNode 编译规则并创建调权节点。
// 例：NewBoostNode(`label.recall_source.value == "trending"`, 0.8)
func NewBoostNode(expr string, factor float64) (*BoostNode, error) {
	rule, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &BoostNode{Rule: rule, Factor: factor}, nil
}

func (n *BoostNode) Name() string {
	return "rank.boost"
}

func (n *BoostNode) Kind() pipeline.Kind {
	return pipeline.KindRank
}

func (n *BoostNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Rule == nil || n.Factor == 0 || n.Factor == 1 {
		return items, nil
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		ok, err := n.Rule.Match(it, rctx)
		if err != nil {
			// 规则对单个 item 求值失败时跳过该 item，不中断链路
			continue
		}
		if ok {
			it.Score *= n.Factor
			it.PutLabel("boosted", utils.Label{Value: n.Rule.Expr, Source: "rank"})
		}
	}
	return items, nil
}
