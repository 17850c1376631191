package filter

import (
	"context"
	"testing"

	"github.com/cinematch/cinekit/core"
	"github.com/cinematch/cinekit/store"
)

func dashboardFixtures() (*store.MemoryCatalog, *store.MemoryRatings) {
	catalog := store.NewMemoryCatalog([]core.Movie{
		{ID: 1, Title: "The Matrix", Language: "en"},
		{ID: 2, Title: "Amélie", Language: "fr"},
		{ID: 3, Title: "Parasite", Language: "ko"},
	})
	ratings := store.NewMemoryRatings([]core.Rating{
		{UserID: 7, MovieID: 1, Rating: 5.0},
	})
	return catalog, ratings
}

func TestRatedFilter(t *testing.T) {
	catalog, ratings := dashboardFixtures()
	f := &RatedFilter{Ratings: ratings, Catalog: catalog}
	rctx := &core.RecommendContext{UserID: 7}
	ctx := context.Background()

	tests := []struct {
		title string
		want  bool
	}{
		{"The Matrix", true}, // 已评分
		{"Amélie", false},
		{"Parasite", false},
	}
	for _, tt := range tests {
		got, err := f.ShouldFilter(ctx, rctx, core.NewItem(tt.title))
		if err != nil {
			t.Fatalf("ShouldFilter(%q) error = %v", tt.title, err)
		}
		if got != tt.want {
			t.Errorf("ShouldFilter(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}

	// 请求内记忆：第二次调用走缓存，结果一致
	if cached, ok := rctx.Params[ratedTitlesParam].(map[string]struct{}); !ok || len(cached) != 1 {
		t.Errorf("已评分集合应缓存在 rctx.Params 里，got %v", rctx.Params)
	}
}

func TestPreferenceFilter(t *testing.T) {
	catalog, _ := dashboardFixtures()
	f := &PreferenceFilter{Catalog: catalog}
	ctx := context.Background()

	tests := []struct {
		name  string
		rctx  *core.RecommendContext
		title string
		want  bool
	}{
		{
			name:  "no profile keeps everything",
			rctx:  &core.RecommendContext{UserID: 7},
			title: "Amélie",
			want:  false,
		},
		{
			name: "no language prefs keeps everything",
			rctx: &core.RecommendContext{
				UserID: 7,
				User:   &core.UserProfile{UserID: 7},
			},
			title: "Amélie",
			want:  false,
		},
		{
			name: "language mismatch filters",
			rctx: &core.RecommendContext{
				UserID: 7,
				User:   &core.UserProfile{UserID: 7, PreferredLanguages: []string{"en", "ko"}},
			},
			title: "Amélie",
			want:  true,
		},
		{
			name: "language match keeps",
			rctx: &core.RecommendContext{
				UserID: 7,
				User:   &core.UserProfile{UserID: 7, PreferredLanguages: []string{"en", "ko"}},
			},
			title: "Parasite",
			want:  false,
		},
		{
			name: "unknown title keeps",
			rctx: &core.RecommendContext{
				UserID: 7,
				User:   &core.UserProfile{UserID: 7, PreferredLanguages: []string{"en"}},
			},
			title: "Not In Catalog",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.ShouldFilter(ctx, tt.rctx, core.NewItem(tt.title))
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestFilterNode_RemovesAndLabels(t *testing.T) {
	catalog, ratings := dashboardFixtures()
	node := &FilterNode{Filters: []Filter{
		&RatedFilter{Ratings: ratings, Catalog: catalog},
	}}

	in := []*core.Item{
		core.NewItem("The Matrix"),
		core.NewItem("Amélie"),
	}
	out, err := node.Process(context.Background(), &core.RecommendContext{UserID: 7}, in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 || out[0].Title != "Amélie" {
		t.Fatalf("out = %v, want 只剩 Amélie", out)
	}
}
