package recall

import (
	"context"
	"encoding/json"

	"github.com/cinematch/cinekit/core"
	"github.com/cinematch/cinekit/pipeline"
	"github.com/cinematch/cinekit/pkg/utils"
)

// Trending 是趋势榜召回源，为仪表盘的"正在流行"栏目供给候选。
// 榜单由导入任务按内容方热度定期刷新：
//   - Store 实现了 KeyValueStore 时走 ZRange（有序集合，按热度降序）
//   - 否则从普通 key 读 JSON 标题数组
//   - Store 不可用时退回内存里的 Titles
//
// Trending 同时实现 Source 和 Node 接口，可以直接挂进 Pipeline。
type Trending struct {
	Store  core.Store
	Key    string   // 例如 "trending:movies"
	Titles []string // fallback 内存列表
	TopK   int
}

func (r *Trending) Name() string        { return "recall.trending" }
func (r *Trending) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Trending) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Trending) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}

	var titles []string
	if r.Store != nil && r.Key != "" {
		if kvStore, ok := r.Store.(core.KeyValueStore); ok {
			members, err := kvStore.ZRange(ctx, r.Key, 0, int64(topK-1))
			if err == nil && len(members) > 0 {
				titles = members
			}
		} else {
			data, err := r.Store.Get(ctx, r.Key)
			if err == nil {
				var parsed []string
				if json.Unmarshal(data, &parsed) == nil {
					titles = parsed
				}
			}
		}
	}

	if len(titles) == 0 {
		titles = r.Titles
	}
	if len(titles) > topK {
		titles = titles[:topK]
	}

	out := make([]*core.Item, 0, len(titles))
	for _, t := range titles {
		it := core.NewItem(t)
		it.PutLabel("recall_source", utils.Label{Value: "trending", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

var _ Source = (*Trending)(nil)
var _ pipeline.Node = (*Trending)(nil)
