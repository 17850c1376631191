package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cinematch/cinekit/core"
)

// appendNode 是测试节点：给流里追加一个固定标题。
type appendNode struct {
	title string
}

func (n *appendNode) Name() string { return "test.append" }
func (n *appendNode) Kind() Kind   { return KindRecall }

func (n *appendNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	return append(items, core.NewItem(n.title)), nil
}

type failNode struct{}

func (n *failNode) Name() string { return "test.fail" }
func (n *failNode) Kind() Kind   { return KindRank }

func (n *failNode) Process(_ context.Context, _ *core.RecommendContext, _ []*core.Item) ([]*core.Item, error) {
	return nil, errors.New("boom")
}

func TestPipeline_RunChainsNodes(t *testing.T) {
	p := &Pipeline{Nodes: []Node{
		&appendNode{title: "a"},
		&appendNode{title: "b"},
	}}

	items, err := p.Run(context.Background(), &core.RecommendContext{UserID: 1}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := make([]string, 0, len(items))
	for _, it := range items {
		got = append(got, it.Title)
	}
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("items = %v, want [a b]", got)
	}
}

func TestPipeline_RunStopsOnNodeError(t *testing.T) {
	p := &Pipeline{Nodes: []Node{
		&appendNode{title: "a"},
		&failNode{},
		&appendNode{title: "b"},
	}}

	if _, err := p.Run(context.Background(), nil, nil); err == nil {
		t.Error("节点出错应中断链路并返回错误")
	}
}

func TestLoadFromYAML_AndBuild(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.yaml")
	yaml := `
pipeline:
  name: dashboard
  nodes:
    - type: test.append
      config:
        title: hello
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML() error = %v", err)
	}
	if cfg.Pipeline.Name != "dashboard" {
		t.Errorf("name = %q, want dashboard", cfg.Pipeline.Name)
	}
	if len(cfg.Pipeline.Nodes) != 1 || cfg.Pipeline.Nodes[0].Type != "test.append" {
		t.Fatalf("nodes = %+v", cfg.Pipeline.Nodes)
	}

	factory := NewNodeFactory()
	factory.Register("test.append", func(config map[string]any) (Node, error) {
		title, _ := config["title"].(string)
		return &appendNode{title: title}, nil
	})

	p, err := cfg.BuildPipeline(factory)
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	items, err := p.Run(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(items) != 1 || items[0].Title != "hello" {
		t.Errorf("items = %v", items)
	}
}

func TestBuildPipeline_UnknownType(t *testing.T) {
	cfg := &Config{}
	cfg.Pipeline.Nodes = []NodeConfig{{Type: "nope"}}
	if _, err := cfg.BuildPipeline(NewNodeFactory()); err == nil {
		t.Error("未注册的节点类型应报错")
	}
}
