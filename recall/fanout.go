package recall

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cinematch/cinekit/core"
	"github.com/cinematch/cinekit/pipeline"
	"github.com/cinematch/cinekit/pkg/utils"
)

// Fanout 是一个 Recall Node：并发执行多个召回源，按声明顺序拼接结果。
//
// 错误隔离是这里的硬约束：任何一路召回失败只记日志并降级为空集，
// 绝不让单路故障拖垮整个推荐请求。两路召回（协同/内容）对称地享受
// 同样的兜底。
//
// 确定性：各源的结果写进按索引预留的槽位，最后按声明顺序拼接，
// 所以并发执行不影响输出顺序——声明在前的源，它的候选也在前，
// 融合时的同分排序规则依赖这一点。
type Fanout struct {
	Sources []Source
	Timeout time.Duration // 每个召回源的超时时间，0 表示不限
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	slots := make([][]*core.Item, len(n.Sources))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, src := range n.Sources {
		i, s := i, src
		eg.Go(func() error {
			recallCtx := egCtx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(egCtx, n.Timeout)
				defer cancel()
			}

			items, err := s.Recall(recallCtx, rctx)
			if err != nil {
				// 单路失败降级为空集，不中断其他召回源
				log.Printf("cinekit: recall source %s degraded to empty: %v", s.Name(), err)
				return nil
			}

			for _, it := range items {
				if it == nil {
					continue
				}
				if _, ok := it.Labels["recall_source"]; !ok {
					it.PutLabel("recall_source", utils.Label{Value: s.Name(), Source: "recall"})
				}
			}
			slots[i] = items
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var all []*core.Item
	for _, items := range slots {
		all = append(all, items...)
	}
	return all, nil
}
