// Package dsl 提供基于 CEL (Common Expression Language) 的规则求值器，
// 用于配置驱动的加权/过滤规则，例如仪表盘上对趋势内容的调权。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/cinematch/cinekit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Rule 是一条编译好的布尔规则，可跨请求复用（编译一次、求值多次）。
//
// 表达式语法（CEL 标准语法）：
//   - 标签：label.recall_source.value == "trending"
//   - 数值：item.score > 4.0
//   - 逻辑：label.recall_source.value == "content" && item.score > 3.5
//
// 注意：不存在的 key 会让求值报错，存在性判断请写 label.key != null。
type Rule struct {
	Expr string
	prg  cel.Program
}

// Compile 编译一条规则表达式。空表达式是合法的，永远求值为 true。
func Compile(expr string) (*Rule, error) {
	r := &Rule{Expr: expr}
	if expr == "" {
		return r, nil
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}
	r.prg = prg
	return r, nil
}

// Match 对单个 item 求值，返回布尔结果。
func (r *Rule) Match(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	if r.prg == nil {
		return true, nil
	}

	out, _, err := r.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", r.Expr, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression %q must return boolean, got %T", r.Expr, out.Value())
	}
	return result, nil
}

// buildInput 把 Item / RecommendContext 展开成 CEL 的输入 map。
func buildInput(it *core.Item, rctx *core.RecommendContext) map[string]any {
	labels := make(map[string]any)
	if it != nil {
		for k, v := range it.Labels {
			labels[k] = map[string]any{
				"value":  v.Value,
				"source": v.Source,
			}
		}
	}

	item := map[string]any{}
	if it != nil {
		item["title"] = it.Title
		item["movie_id"] = it.MovieID
		item["score"] = it.Score
	}

	rc := map[string]any{}
	if rctx != nil {
		rc["user_id"] = rctx.UserID
		rc["scene"] = rctx.Scene
	}

	return map[string]any{
		"item":  item,
		"label": labels,
		"rctx":  rc,
	}
}
