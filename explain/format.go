// Package explain 把融合排序后的候选整理成面向展示层的最终结果：
// 理由列表 + 有界匹配度。
package explain

import (
	"context"

	"github.com/cinematch/cinekit/core"
	"github.com/cinematch/cinekit/pipeline"
)

// MatchScoreDivisor 是融合分到百分比的换算除数。取 5.0 是假定
// 协同分（上限 5）主导了典型总分；两路叠加的总分经常超过 5，
// 所以 100 的封顶不是防御而是常态路径，必须保留。
const MatchScoreDivisor = 5.0

// MatchScore 把非负融合分换算成 [0,100] 的展示百分比。
func MatchScore(score float64) float64 {
	pct := score / MatchScoreDivisor * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// Format 把候选列表物化成最终结果行。理由保持 Item 里的插入顺序
//（协同理由先于内容理由），输出完全可复现。
func Format(items []*core.Item) []core.Recommendation {
	out := make([]core.Recommendation, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		reasons := make([]string, len(it.Reasons))
		copy(reasons, it.Reasons)
		out = append(out, core.Recommendation{
			Title:      it.Title,
			Reasons:    reasons,
			MatchScore: MatchScore(it.Score),
		})
	}
	return out
}

// Node 是后处理节点形态的格式化器：把匹配度写进 item.Meta，
// 供只消费 Item 流的调用方（如仪表盘 pipeline）使用。
type Node struct{}

func (n *Node) Name() string {
	return "explain.format"
}

func (n *Node) Kind() pipeline.Kind {
	return pipeline.KindPostProcess
}

func (n *Node) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	for _, it := range items {
		if it == nil {
			continue
		}
		if it.Meta == nil {
			it.Meta = make(map[string]any)
		}
		it.Meta["match_score"] = MatchScore(it.Score)
	}
	return items, nil
}
