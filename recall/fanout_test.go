package recall

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/cinematch/cinekit/core"
)

// stubSource 是测试用召回源：固定返回一组标题或一个错误。
type stubSource struct {
	name   string
	titles []string
	err    error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Recall(_ context.Context, _ *core.RecommendContext) ([]*core.Item, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*core.Item, 0, len(s.titles))
	for _, t := range s.titles {
		out = append(out, core.NewItem(t))
	}
	return out, nil
}

func titlesOf(items []*core.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}

// 并发执行但按声明顺序拼接：前面的源的候选永远在前。
func TestFanout_DeclarationOrder(t *testing.T) {
	fanout := &Fanout{
		Sources: []Source{
			&stubSource{name: "a", titles: []string{"a1", "a2"}},
			&stubSource{name: "b", titles: []string{"b1"}},
			&stubSource{name: "c", titles: []string{"c1", "c2"}},
		},
	}

	for i := 0; i < 20; i++ {
		items, err := fanout.Process(context.Background(), &core.RecommendContext{UserID: 1}, nil)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		want := []string{"a1", "a2", "b1", "c1", "c2"}
		if got := titlesOf(items); !reflect.DeepEqual(got, want) {
			t.Fatalf("run %d: order = %v, want %v", i, got, want)
		}
	}
}

// 单路失败降级为空集，另一路照常产出——两路对称兜底。
func TestFanout_DegradeOnSourceError(t *testing.T) {
	tests := []struct {
		name    string
		sources []Source
		want    []string
	}{
		{
			name: "first source fails",
			sources: []Source{
				&stubSource{name: "bad", err: errors.New("store unavailable")},
				&stubSource{name: "good", titles: []string{"x"}},
			},
			want: []string{"x"},
		},
		{
			name: "second source fails",
			sources: []Source{
				&stubSource{name: "good", titles: []string{"x"}},
				&stubSource{name: "bad", err: errors.New("store unavailable")},
			},
			want: []string{"x"},
		},
		{
			name: "all sources fail",
			sources: []Source{
				&stubSource{name: "bad1", err: errors.New("boom")},
				&stubSource{name: "bad2", err: errors.New("boom")},
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fanout := &Fanout{Sources: tt.sources}
			items, err := fanout.Process(context.Background(), &core.RecommendContext{UserID: 1}, nil)
			if err != nil {
				t.Fatalf("单路故障不应让请求失败，error = %v", err)
			}
			if got := titlesOf(items); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("titles = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFanout_StampsSourceLabel(t *testing.T) {
	fanout := &Fanout{
		Sources: []Source{&stubSource{name: "stub", titles: []string{"x"}}},
	}
	items, err := fanout.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if lbl := items[0].Labels["recall_source"]; lbl.Value != "stub" {
		t.Errorf("recall_source = %v, want stub", lbl.Value)
	}
}

func TestFanout_NoSources(t *testing.T) {
	fanout := &Fanout{}
	items, err := fanout.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %v, want empty", items)
	}
}
