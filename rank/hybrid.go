package rank

import (
	"context"
	"sort"

	"github.com/cinematch/cinekit/core"
	"github.com/cinematch/cinekit/pipeline"
)

// HybridNode 是混合融合排序节点：把多路召回的候选按标题归并成
// 一个累加器，再按总分降序输出。
//
// 累加规则（见 core.Item.Absorb）：
//   - 同一标题无论被多少路召回命中，在输出里只出现一次
//   - 总分 = 各路贡献之和；被两路同时命中的影片因此浮到前面，
//     这正是混合信号的意义
//   - 理由 = 各路理由的并集，保持插入顺序
//
// 排序：按总分稳定降序。同分时保持首次插入顺序——fan-out 保证
// 协同候选先于内容候选进入累加器，所以同分之下协同候选靠前。
type HybridNode struct{}

func (n *HybridNode) Name() string {
	return "rank.hybrid"
}

func (n *HybridNode) Kind() pipeline.Kind {
	return pipeline.KindRank
}

func (n *HybridNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return nil, nil
	}

	index := make(map[string]*core.Item, len(items))
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if acc, ok := index[it.Title]; ok {
			acc.Absorb(it)
			continue
		}
		index[it.Title] = it
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}
