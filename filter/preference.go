package filter

import (
	"context"

	"github.com/cinematch/cinekit/core"
)

// PreferenceFilter 按用户画像里的语言偏好过滤仪表盘候选。
// 偏好来自注册后的 profile setup 流程（可经 feast 包从 Feature
// Store 拉取填充到 rctx.User）。
//
// 行为约定：
//   - 画像缺失或没设语言偏好时不过滤任何候选（冷启动友好）
//   - 目录里查不到的标题保留——宁可多展示，也不静默吞掉候选
type PreferenceFilter struct {
	Catalog core.CatalogStore
}

func (f *PreferenceFilter) Name() string {
	return "filter.preference"
}

func (f *PreferenceFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || rctx == nil || rctx.User == nil || f.Catalog == nil {
		return false, nil
	}
	if len(rctx.User.PreferredLanguages) == 0 {
		return false, nil
	}

	movie, err := f.Catalog.MovieByTitle(ctx, item.Title)
	if err != nil {
		return false, nil
	}
	return !rctx.User.PrefersLanguage(movie.Language), nil
}
