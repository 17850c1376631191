package recall

import (
	"context"
	"fmt"

	"github.com/cinematch/cinekit/core"
	"github.com/cinematch/cinekit/pkg/utils"
	"github.com/cinematch/cinekit/similarity"
)

// 内容召回的排名衰减打分：第 i 名（0 起）候选贡献 4.0 − 0.1·i。
// 这是调出来的常量，不是从相似度大小推导的——相似度只保留了排名
// 信息，幅度被丢掉了。衰减让靠前的相似影片比靠后的贡献更多，
// 量级又压在协同分（上限 5）之下。
const (
	ContentBaseScore = 4.0
	ContentRankDecay = 0.1
)

// Content 是内容相似召回源："用户最喜欢的那部影片"作为种子，
// 从相似度索引里取与它最像的 TopK 部。
//
// 行为约定：
//   - 种子 = 该用户评分最高的影片；并列最高分取影片 ID 最小的
//   - 用户一条评分都没有时整个分支跳过，返回空集，不是错误
//   - 种子标题在索引里模糊匹配不中同样降级为空集
type Content struct {
	Catalog core.CatalogStore
	Ratings core.RatingStore
	Index   *similarity.Index

	// TopK 最终返回的候选数
	TopK int
}

func (r *Content) Name() string {
	return "recall.content"
}

func (r *Content) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Catalog == nil || r.Ratings == nil || r.Index == nil || rctx == nil {
		return nil, nil
	}

	ratings, err := r.Ratings.UserRatings(ctx, rctx.UserID)
	if err != nil {
		return nil, err
	}
	seed, ok := core.TopRated(ratings)
	if !ok {
		return nil, nil
	}

	seedMovie, err := r.Catalog.MovieByID(ctx, seed.MovieID)
	if err != nil {
		return nil, err
	}

	topK := r.TopK
	if topK <= 0 {
		topK = 10
	}
	_, titles, err := r.Index.FindSimilar(seedMovie.Title, topK)
	if err != nil {
		if core.IsTitleNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	reason := fmt.Sprintf("Because you liked '%s'", seedMovie.Title)
	out := make([]*core.Item, 0, len(titles))
	for i, title := range titles {
		it := core.NewItem(title)
		it.Score = ContentBaseScore - ContentRankDecay*float64(i)
		it.AddReason(reason)
		it.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
		it.PutLabel("seed_title", utils.Label{Value: seedMovie.Title, Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

var _ Source = (*Content)(nil)
