package core

// Recommendation 是返回给展示层的最终结果行。
// 请求时生成、用完即弃，不落库。
//
// MatchScore 是展示用的匹配度百分比，不是概率：融合分除以 5 再乘 100，
// 封顶 100。两路召回的分数会叠加，总分经常超过 5，所以上限裁剪是
// 必须保留的行为，不是防御性代码。
type Recommendation struct {
	Title      string   `json:"title"`
	Reasons    []string `json:"reasons"`
	MatchScore float64  `json:"match_score"`
}
