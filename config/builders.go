package config

import (
	"fmt"

	"github.com/cinematch/cinekit/explain"
	"github.com/cinematch/cinekit/filter"
	"github.com/cinematch/cinekit/pipeline"
	"github.com/cinematch/cinekit/pkg/conv"
	"github.com/cinematch/cinekit/rank"
	"github.com/cinematch/cinekit/recall"
	"github.com/cinematch/cinekit/rerank"
)

func init() {
	Register("recall.trending", BuildTrendingNode)
	Register("rank.hybrid", BuildHybridNode)
	Register("rank.boost", BuildBoostNode)
	Register("rerank.topn", BuildTopNNode)
	Register("rerank.diversity", BuildDiversityNode)
	Register("filter", BuildFilterNode)
	Register("explain.format", BuildExplainNode)
}

// BuildTrendingNode 构建趋势榜召回。Store 是运行时依赖，配置里
// 给不了，留空让调用方在构建后注入；只配 fallback 标题时可直接用。
func BuildTrendingNode(cfg map[string]any) (pipeline.Node, error) {
	titles := conv.SliceAnyToString(cfg["titles"])
	if titles == nil {
		titles = []string{}
	}
	return &recall.Trending{
		Key:    conv.ConfigGet(cfg, "key", ""),
		Titles: titles,
		TopK:   int(conv.ConfigGetInt64(cfg, "top_k", 0)),
	}, nil
}

func BuildHybridNode(cfg map[string]any) (pipeline.Node, error) {
	return &rank.HybridNode{}, nil
}

func BuildBoostNode(cfg map[string]any) (pipeline.Node, error) {
	expr := conv.ConfigGet(cfg, "rule", "")
	if expr == "" {
		return nil, fmt.Errorf("rule not found")
	}
	factor := conv.ConfigGetFloat64(cfg, "factor", 1.0)
	return rank.NewBoostNode(expr, factor)
}

func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	n := conv.ConfigGetInt64(cfg, "n", 0)
	if n <= 0 {
		return nil, fmt.Errorf("n must be positive")
	}
	return &rerank.TopNNode{N: int(n)}, nil
}

// BuildDiversityNode 的 Catalog 同样是运行时依赖，构建后注入。
func BuildDiversityNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.Diversity{}, nil
}

// BuildFilterNode 构建过滤节点。过滤器依赖的评分表/目录是运行时
// 依赖，这里只实例化结构，nil 依赖的过滤器会放行全部候选。
func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]any)
		if !ok {
			continue
		}
		switch filterType := conv.ConfigGet(filterMap, "type", ""); filterType {
		case "rated":
			filters = append(filters, &filter.RatedFilter{})
		case "preference":
			filters = append(filters, &filter.PreferenceFilter{})
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}

	return &filter.FilterNode{Filters: filters}, nil
}

func BuildExplainNode(cfg map[string]any) (pipeline.Node, error) {
	return &explain.Node{}, nil
}
