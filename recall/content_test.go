package recall

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/cinematch/cinekit/core"
	"github.com/cinematch/cinekit/similarity"
	"github.com/cinematch/cinekit/store"
)

func testSimilarityIndex(t *testing.T) *similarity.Index {
	t.Helper()
	idx, err := similarity.NewIndex(
		[]string{"The Matrix", "Inception", "Interstellar", "The Notebook"},
		[][]float64{
			{1.00, 0.90, 0.80, 0.10},
			{0.90, 1.00, 0.85, 0.12},
			{0.80, 0.85, 1.00, 0.15},
			{0.10, 0.12, 0.15, 1.00},
		},
	)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	return idx
}

func TestContent_Recall(t *testing.T) {
	src := &Content{
		Catalog: testCatalog(),
		Ratings: store.NewMemoryRatings([]core.Rating{
			{UserID: 7, MovieID: 4, Rating: 3.0},
			{UserID: 7, MovieID: 1, Rating: 5.0}, // 最高分 → 种子
		}),
		Index: testSimilarityIndex(t),
		TopK:  10,
	}

	items, err := src.Recall(context.Background(), &core.RecommendContext{UserID: 7})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}

	got := make([]string, 0, len(items))
	for _, it := range items {
		got = append(got, it.Title)
	}
	want := []string{"Inception", "Interstellar", "The Notebook"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("titles = %v, want %v", got, want)
	}

	// 排名衰减：4.0, 3.9, 3.8
	for i, wantScore := range []float64{4.0, 3.9, 3.8} {
		if math.Abs(items[i].Score-wantScore) > 1e-9 {
			t.Errorf("items[%d].Score = %v, want %v", i, items[i].Score, wantScore)
		}
	}

	wantReason := "Because you liked 'The Matrix'"
	if !reflect.DeepEqual(items[0].Reasons, []string{wantReason}) {
		t.Errorf("reasons = %v, want [%s]", items[0].Reasons, wantReason)
	}
	if lbl := items[0].Labels["seed_title"]; lbl.Value != "The Matrix" {
		t.Errorf("seed_title label = %v, want The Matrix", lbl.Value)
	}
}

func TestContent_NoRatings(t *testing.T) {
	src := &Content{
		Catalog: testCatalog(),
		Ratings: store.NewMemoryRatings(nil),
		Index:   testSimilarityIndex(t),
	}

	items, err := src.Recall(context.Background(), &core.RecommendContext{UserID: 99})
	if err != nil {
		t.Fatalf("无评分用户不应报错，error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("无评分用户应返回空集，got %v", items)
	}
}

func TestContent_SeedTitleNotInIndex(t *testing.T) {
	catalog := store.NewMemoryCatalog([]core.Movie{
		{ID: 50, Title: "Obscure Festival Film"},
	})
	src := &Content{
		Catalog: catalog,
		Ratings: store.NewMemoryRatings([]core.Rating{
			{UserID: 7, MovieID: 50, Rating: 5.0},
		}),
		Index: testSimilarityIndex(t),
	}

	items, err := src.Recall(context.Background(), &core.RecommendContext{UserID: 7})
	if err != nil {
		t.Fatalf("种子不在索引里应降级为空集，error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %v, want empty", items)
	}
}

func TestContent_SeedTieBreak(t *testing.T) {
	src := &Content{
		Catalog: testCatalog(),
		Ratings: store.NewMemoryRatings([]core.Rating{
			{UserID: 7, MovieID: 3, Rating: 5.0},
			{UserID: 7, MovieID: 2, Rating: 5.0}, // 并列最高分，ID 更小 → 种子
		}),
		Index: testSimilarityIndex(t),
		TopK:  1,
	}

	items, err := src.Recall(context.Background(), &core.RecommendContext{UserID: 7})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1", len(items))
	}
	if lbl := items[0].Labels["seed_title"]; lbl.Value != "Inception" {
		t.Errorf("seed = %v, want Inception（并列最高分取影片 ID 最小）", lbl.Value)
	}
}
