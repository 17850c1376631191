// Package similarity 实现内容相似度索引：离线算好的 item-item 余弦矩阵
// 加上 title→row 映射，在线侧只做模糊标题解析和按行取 TopN。
package similarity

import (
	"fmt"
	"sort"

	"github.com/cinematch/cinekit/core"
)

// MatchCutoff 是模糊标题匹配的接受阈值（0-1 刻度）。
// 低于阈值视为"库里没有这部影片"，返回 core.ErrTitleNotFound。
// 作为具名常量暴露，便于在边界值上调参和测试。
const MatchCutoff = 0.6

// Index 是只读的相似度索引。构造完成后不再变更，
// 多个并发请求可以无锁共享同一个实例。
type Index struct {
	titles []string
	rows   map[string]int // title → 矩阵行号，重复标题保留首条
	matrix [][]float64
}

// NewIndex 从标题列表和方阵构造索引。
// matrix[i][j] 是第 i、j 部影片的对称相似度，对角线恒为最大值。
func NewIndex(titles []string, matrix [][]float64) (*Index, error) {
	if len(matrix) != len(titles) {
		return nil, fmt.Errorf("similarity: matrix has %d rows for %d titles", len(matrix), len(titles))
	}
	for i, row := range matrix {
		if len(row) != len(titles) {
			return nil, fmt.Errorf("similarity: row %d has %d columns, want %d", i, len(row), len(titles))
		}
	}

	rows := make(map[string]int, len(titles))
	for i, t := range titles {
		if _, ok := rows[t]; !ok {
			rows[t] = i
		}
	}

	return &Index{
		titles: titles,
		rows:   rows,
		matrix: matrix,
	}, nil
}

// Len 返回索引中的影片数。
func (idx *Index) Len() int {
	return len(idx.titles)
}

// Titles 返回索引内的标题列表（载入顺序）。调用方不得修改。
func (idx *Index) Titles() []string {
	return idx.titles
}

// Resolve 把查询串模糊解析成库内标题。
// 匹配不到（所有候选都低于 MatchCutoff）时返回 ("", false)。
func (idx *Index) Resolve(query string) (string, bool) {
	return closestMatch(query, idx.titles, MatchCutoff)
}

// FindSimilar 返回与 query 最相似的至多 topN 个标题。
//
// 行为约定：
//   - query 先做模糊解析；解析失败返回 ErrTitleNotFound 和空列表，
//     这是可上报的正常结果，调用方不应把它当作请求失败
//   - 匹配行按相似度降序稳定排序，相似度相同的保持目录顺序
//   - 被匹配的影片自身（对自己相似度恒为最大）永远不出现在结果里
func (idx *Index) FindSimilar(query string, topN int) (string, []string, error) {
	matched, ok := idx.Resolve(query)
	if !ok {
		return "", nil, core.ErrTitleNotFound
	}

	self := idx.rows[matched]
	row := idx.matrix[self]

	order := make([]int, 0, len(row)-1)
	for i := range row {
		if i == self {
			continue
		}
		order = append(order, i)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return row[order[a]] > row[order[b]]
	})

	if topN < 0 {
		topN = 0
	}
	if topN > len(order) {
		topN = len(order)
	}
	out := make([]string, 0, topN)
	for _, i := range order[:topN] {
		out = append(out, idx.titles[i])
	}
	return matched, out, nil
}
