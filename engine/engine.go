// Package engine 组装混合推荐引擎：协同召回 + 内容召回 → 融合排序
// → 截断 → 格式化，对外只暴露一个操作 Recommend。
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/cinematch/cinekit/core"
	"github.com/cinematch/cinekit/explain"
	"github.com/cinematch/cinekit/model"
	"github.com/cinematch/cinekit/pipeline"
	"github.com/cinematch/cinekit/rank"
	"github.com/cinematch/cinekit/recall"
	"github.com/cinematch/cinekit/rerank"
	"github.com/cinematch/cinekit/similarity"
)

// DefaultTopN 是调用方不指定 n 时的默认返回条数。
const DefaultTopN = 10

// Engine 持有四件只读输入：影片目录、评分表、相似度索引、评分预测
// 模型，全部在构造时显式注入——没有进程级全局状态，测试可以并行
// 跑多个带不同夹具的实例。
//
// 实例线程安全：请求期间不写任何共享状态，候选累加器是每次
// Recommend 调用的局部变量。
type Engine struct {
	catalog   core.CatalogStore
	ratings   core.RatingStore
	index     *similarity.Index
	predictor model.RatingPredictor

	// BranchTimeout 单路召回的超时，0 表示不限（总时长由调用方的 ctx 约束）
	BranchTimeout time.Duration
}

// New 构造引擎。任何一件输入缺失都立即报错：调用方应在启动时调用
// 一次，失败则关闭推荐功能（仪表盘不渲染混合推荐栏目），而不是
// 每个请求重试。
func New(
	catalog core.CatalogStore,
	ratings core.RatingStore,
	index *similarity.Index,
	predictor model.RatingPredictor,
) (*Engine, error) {
	if catalog == nil {
		return nil, fmt.Errorf("engine: catalog store is required")
	}
	if ratings == nil {
		return nil, fmt.Errorf("engine: rating store is required")
	}
	if index == nil {
		return nil, fmt.Errorf("engine: similarity index is required")
	}
	if predictor == nil {
		return nil, fmt.Errorf("engine: rating predictor is required")
	}
	return &Engine{
		catalog:   catalog,
		ratings:   ratings,
		index:     index,
		predictor: predictor,
	}, nil
}

// Recommend 为用户生成至多 n 条混合推荐。
//
// 行为约定：
//   - 任何一路召回失败都在 fan-out 层降级为空集；两路都空时返回
//     空列表（合法结果，展示层渲染"暂无推荐"），不返回错误
//   - 没有评分的用户两路都产不出候选，稳定地得到空列表
//   - 输入不变则输出不变：稳定排序 + 显式 tie-break，无隐藏随机性
func (e *Engine) Recommend(ctx context.Context, userID int64, n int) ([]core.Recommendation, error) {
	if n <= 0 {
		n = DefaultTopN
	}

	rctx := &core.RecommendContext{
		UserID: userID,
		Scene:  "hybrid",
	}

	// 协同源声明在前：融合同分时协同候选优先，依赖 fan-out 的声明序拼接
	p := &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.Fanout{
				Sources: []recall.Source{
					&recall.Collaborative{
						Catalog: e.catalog,
						Ratings: e.ratings,
						Model:   e.predictor,
						TopK:    n,
					},
					&recall.Content{
						Catalog: e.catalog,
						Ratings: e.ratings,
						Index:   e.index,
						TopK:    n,
					},
				},
				Timeout: e.BranchTimeout,
			},
			&rank.HybridNode{},
			&rerank.TopNNode{N: n},
		},
	}

	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}
	return explain.Format(items), nil
}
