// Package cinekit 是一个影视混合推荐工具包（Cinema Kit）：
// 协同过滤预测 + 内容相似度召回，融合成一份带理由、带匹配度的
// 排序列表。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Rank → ReRank → PostProcess）
// - 双路融合: 同一影片被多路召回时分数累加、理由合并，信号叠加即排序提升
// - 可复现: 稳定排序 + 显式 tie-break，同样的输入永远得到同样的列表
// - Node 可扩展: 自定义 Node 即可插拔扩展
package cinekit

import "github.com/cinematch/cinekit/pipeline"

// 轻量 facade：便于用户直接 import "cinekit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
