package rank

import (
	"context"
	"reflect"
	"testing"

	"github.com/cinematch/cinekit/core"
)

func item(title string, score float64, reasons ...string) *core.Item {
	it := core.NewItem(title)
	it.Score = score
	for _, r := range reasons {
		it.AddReason(r)
	}
	return it
}

// 双路叠加的典型案例：B 被协同和内容同时命中，分数相加后反超
// 单路最高分的 A。
func TestHybridNode_FuseAccumulates(t *testing.T) {
	in := []*core.Item{
		item("Movie A", 4.8, "Highly rated by users like you"),
		item("Movie B", 4.5, "Highly rated by users like you"),
		item("Movie C", 4.5, "Highly rated by users like you"),
		item("Movie D", 3.9, "Highly rated by users like you"),
		item("Movie B", 4.0, "Because you liked 'The Matrix'"),
	}

	node := &HybridNode{}
	out, err := node.Process(context.Background(), &core.RecommendContext{UserID: 1}, in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	gotTitles := make([]string, 0, len(out))
	for _, it := range out {
		gotTitles = append(gotTitles, it.Title)
	}
	wantTitles := []string{"Movie B", "Movie A", "Movie C", "Movie D"}
	if !reflect.DeepEqual(gotTitles, wantTitles) {
		t.Fatalf("order = %v, want %v", gotTitles, wantTitles)
	}

	b := out[0]
	if b.Score != 8.5 {
		t.Errorf("Movie B score = %v, want 8.5（4.5 + 4.0）", b.Score)
	}
	wantReasons := []string{
		"Highly rated by users like you",
		"Because you liked 'The Matrix'",
	}
	if !reflect.DeepEqual(b.Reasons, wantReasons) {
		t.Errorf("Movie B reasons = %v, want %v", b.Reasons, wantReasons)
	}
}

// 同分候选保持首次插入顺序：声明在前的召回源赢得 tie-break。
func TestHybridNode_StableTieBreak(t *testing.T) {
	in := []*core.Item{
		item("First", 4.0),
		item("Second", 4.0),
		item("Third", 4.0),
	}

	node := &HybridNode{}
	out, err := node.Process(context.Background(), nil, in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	want := []string{"First", "Second", "Third"}
	got := make([]string, 0, len(out))
	for _, it := range out {
		got = append(got, it.Title)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestHybridNode_EmptyInput(t *testing.T) {
	node := &HybridNode{}
	out, err := node.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 0 {
		t.Errorf("空输入应得到空输出，got %v", out)
	}
}

// 同一影片出现三次：每次命中都累加。
func TestHybridNode_TripleHit(t *testing.T) {
	in := []*core.Item{
		item("Movie A", 1.0, "r1"),
		item("Movie A", 2.0, "r2"),
		item("Movie A", 3.0, "r1"),
	}

	node := &HybridNode{}
	out, err := node.Process(context.Background(), nil, in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].Score != 6.0 {
		t.Errorf("score = %v, want 6.0", out[0].Score)
	}
	if !reflect.DeepEqual(out[0].Reasons, []string{"r1", "r2"}) {
		t.Errorf("reasons = %v, want [r1 r2]", out[0].Reasons)
	}
}
