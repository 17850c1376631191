package rerank

import (
	"context"
	"strings"

	"github.com/cinematch/cinekit/core"
	"github.com/cinematch/cinekit/pipeline"
)

// Diversity 是仪表盘栏目的类型多样性重排：同一主类型只保留排名
// 最靠前的一部，避免整行都是同类型影片。
//
// 主类型解析优先级：
//   - meta["genre"]（上游节点已解析好）
//   - 通过 Catalog 按标题查目录行，取 Genres 的第一个类型
//
// 解析不出类型的候选直接保留。
type Diversity struct {
	Catalog core.CatalogStore
}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	seen := make(map[string]bool, len(items))
	out := make([]*core.Item, 0, len(items))

	for _, it := range items {
		if it == nil {
			continue
		}

		genre := n.primaryGenre(ctx, it)
		if genre == "" {
			out = append(out, it)
			continue
		}
		if seen[genre] {
			continue
		}
		seen[genre] = true
		out = append(out, it)
	}

	return out, nil
}

func (n *Diversity) primaryGenre(ctx context.Context, it *core.Item) string {
	if it.Meta != nil {
		if v, ok := it.Meta["genre"]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	if n.Catalog == nil {
		return ""
	}
	movie, err := n.Catalog.MovieByTitle(ctx, it.Title)
	if err != nil {
		return ""
	}
	genre, _, _ := strings.Cut(movie.Genres, ",")
	return strings.TrimSpace(genre)
}
