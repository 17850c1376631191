package filter

import (
	"context"

	"github.com/cinematch/cinekit/core"
)

// RatedFilter 过滤掉用户已经评过分的影片，用在趋势榜等不带
// 内建排除逻辑的召回后面（混合引擎的协同召回自己就会排除已评分
// 影片，不需要挂这个过滤器）。
//
// 已评分集合按请求拉取一次、缓存在过滤器实例里是不行的——
// FilterNode 对每个候选调用 ShouldFilter，所以这里用 rctx.Params
// 做请求内记忆，避免对同一次请求反复读评分表。
type RatedFilter struct {
	Ratings core.RatingStore
	Catalog core.CatalogStore
}

const ratedTitlesParam = "__rated_titles"

func (f *RatedFilter) Name() string {
	return "filter.rated"
}

func (f *RatedFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || rctx == nil || f.Ratings == nil || f.Catalog == nil {
		return false, nil
	}

	titles, err := f.ratedTitles(ctx, rctx)
	if err != nil {
		return false, err
	}
	_, rated := titles[item.Title]
	return rated, nil
}

// ratedTitles 把用户的已评分影片 ID 解析成标题集合，按请求缓存。
func (f *RatedFilter) ratedTitles(ctx context.Context, rctx *core.RecommendContext) (map[string]struct{}, error) {
	if rctx.Params != nil {
		if cached, ok := rctx.Params[ratedTitlesParam].(map[string]struct{}); ok {
			return cached, nil
		}
	}

	ratings, err := f.Ratings.UserRatings(ctx, rctx.UserID)
	if err != nil {
		return nil, err
	}
	titles := make(map[string]struct{}, len(ratings))
	for _, r := range ratings {
		movie, err := f.Catalog.MovieByID(ctx, r.MovieID)
		if err != nil {
			continue
		}
		titles[movie.Title] = struct{}{}
	}

	if rctx.Params == nil {
		rctx.Params = make(map[string]any)
	}
	rctx.Params[ratedTitlesParam] = titles
	return titles, nil
}
