package core

import "github.com/cinematch/cinekit/pkg/utils"

// Item 是推荐链路中的统一承载结构：分数、推荐理由、标签。
// 本库中候选物品以标题为主键（相似度索引就是按 title→row 建的，
// 标题重复时取首条，这是从离线建模侧继承下来的约定）。
// Score 用于融合排序；Reasons 是按插入顺序去重的推荐理由集合，
// 保证同样输入产出同样顺序，便于测试与展示。
type Item struct {
	Title   string
	MovieID int64 // 0 表示来源只知道标题（例如相似度索引）
	Score   float64
	Reasons []string
	Meta    map[string]any
	Labels  map[string]utils.Label

	reasonSet map[string]struct{}
}

func NewItem(title string) *Item {
	return &Item{
		Title:  title,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// AddReason 追加一条推荐理由；重复理由只保留首次插入的位置。
func (it *Item) AddReason(reason string) {
	if reason == "" {
		return
	}
	if it.reasonSet == nil {
		it.reasonSet = make(map[string]struct{}, 2)
		for _, r := range it.Reasons {
			it.reasonSet[r] = struct{}{}
		}
	}
	if _, ok := it.reasonSet[reason]; ok {
		return
	}
	it.reasonSet[reason] = struct{}{}
	it.Reasons = append(it.Reasons, reason)
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// Absorb 把另一个同标题候选的贡献并入当前 Item：
// 分数相加、理由取并集（保持插入序）、Label 按 Merge 规则累积。
// 这是混合融合的核心累加规则：被两路召回同时命中的物品会浮到前面。
func (it *Item) Absorb(other *Item) {
	if other == nil {
		return
	}
	it.Score += other.Score
	for _, r := range other.Reasons {
		it.AddReason(r)
	}
	if it.MovieID == 0 {
		it.MovieID = other.MovieID
	}
	for k, v := range other.Labels {
		it.PutLabel(k, v)
	}
}
