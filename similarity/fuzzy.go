package similarity

import "github.com/pmezard/go-difflib/difflib"

// closestMatch 在候选标题里找与 query 编辑相似度最高的一个。
// 相似度用 difflib 的 SequenceMatcher ratio（2*M/T），与离线侧
// 建索引时用的匹配口径一致；并列最高分保留先出现的候选。
func closestMatch(query string, candidates []string, cutoff float64) (string, bool) {
	m := difflib.NewMatcher(nil, splitChars(query))

	best := ""
	bestRatio := 0.0
	found := false
	for _, c := range candidates {
		m.SetSeq1(splitChars(c))
		// 先走两级廉价上界，绝大多数候选不用算完整 ratio
		if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
			continue
		}
		r := m.Ratio()
		if r < cutoff {
			continue
		}
		if !found || r > bestRatio {
			best = c
			bestRatio = r
			found = true
		}
	}
	return best, found
}

// splitChars 把字符串按 rune 拆成 SequenceMatcher 需要的元素序列。
func splitChars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
