package recall

import (
	"context"
	"sort"

	"github.com/cinematch/cinekit/core"
	"github.com/cinematch/cinekit/model"
	"github.com/cinematch/cinekit/pkg/utils"
)

// ReasonCollaborative 是协同召回候选附带的推荐理由。
const ReasonCollaborative = "Highly rated by users like you"

// Collaborative 是协同过滤召回源：对用户没评过分的每一部影片
// 调用训练好的评分预测模型，按预测分取 TopK。
//
// 核心思想："兴趣相似的用户，喜欢相似的物品"——相似性已经在
// 离线训练时压进了模型制品，在线侧只做逐影片打分。
//
// 行为约定：
//   - 一条评分都没有的用户直接返回空集：模型对这种用户只会吐出
//     全局均值，没有个性化信息，冷启动交给趋势榜栏目
//   - 未评分集合 = 目录全集 − 该用户已评分集合，按目录顺序遍历
//   - 排序为稳定降序：预测分相同的保持目录顺序，保证结果可复现
//   - 用户把目录评了个遍时返回空集，不是错误
//
// 成本提示：每次请求的预测次数是 O(未评分影片数)，目录很大时
// 这是整条链路的主要开销。
type Collaborative struct {
	Catalog core.CatalogStore
	Ratings core.RatingStore
	Model   model.RatingPredictor

	// TopK 最终返回的候选数
	TopK int
}

func (r *Collaborative) Name() string {
	return "recall.collaborative"
}

func (r *Collaborative) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Catalog == nil || r.Ratings == nil || r.Model == nil || rctx == nil {
		return nil, nil
	}

	ratings, err := r.Ratings.UserRatings(ctx, rctx.UserID)
	if err != nil {
		return nil, err
	}
	if len(ratings) == 0 {
		return nil, nil
	}
	rated := core.RatedIDs(ratings)

	movies, err := r.Catalog.AllMovies(ctx)
	if err != nil {
		return nil, err
	}

	type scoredMovie struct {
		movie core.Movie
		est   float64
	}
	// 评分表与目录是两份独立导出的离线产物，评分可能指向目录里
	// 已不存在的影片 ID，容量按目录全集预留，不能按差集算。
	preds := make([]scoredMovie, 0, len(movies))
	for _, m := range movies {
		if _, ok := rated[m.ID]; ok {
			continue
		}
		preds = append(preds, scoredMovie{movie: m, est: r.Model.Predict(rctx.UserID, m.ID)})
	}
	if len(preds) == 0 {
		return nil, nil
	}

	sort.SliceStable(preds, func(i, j int) bool {
		return preds[i].est > preds[j].est
	})

	topK := r.TopK
	if topK <= 0 {
		topK = 10
	}
	if len(preds) > topK {
		preds = preds[:topK]
	}

	out := make([]*core.Item, 0, len(preds))
	for _, p := range preds {
		it := core.NewItem(p.movie.Title)
		it.MovieID = p.movie.ID
		it.Score = p.est
		it.AddReason(ReasonCollaborative)
		it.PutLabel("recall_source", utils.Label{Value: "collaborative", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

var _ Source = (*Collaborative)(nil)
