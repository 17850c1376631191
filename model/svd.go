package model

import "github.com/cinematch/cinekit/core"

// SVDModel 是离线矩阵分解训练产出的查表制品：
// 全局均值、用户/物品偏置、用户/物品隐向量。
//
// 预测分数 = mu + bu + bi + pu·qi
//
// 没见过的用户或影片缺哪项就丢哪项（都缺时退化为全局均值），
// 最终估计值裁剪回评分刻度 [1,5]——与训练侧的预测口径保持一致。
//
// 工程特征：
//   - 实时性：好（离线训练，在线查表）
//   - 计算复杂度：低（向量点积）
//   - 冷启动：靠全局均值兜底
type SVDModel struct {
	GlobalMean  float64             `json:"global_mean"`
	UserBias    map[int64]float64   `json:"user_bias"`
	ItemBias    map[int64]float64   `json:"item_bias"`
	UserFactors map[int64][]float64 `json:"user_factors"`
	ItemFactors map[int64][]float64 `json:"item_factors"`
}

func (m *SVDModel) Name() string {
	return "model.svd"
}

// Predict 实现 RatingPredictor 接口。
func (m *SVDModel) Predict(userID, movieID int64) float64 {
	est := m.GlobalMean
	if b, ok := m.UserBias[userID]; ok {
		est += b
	}
	if b, ok := m.ItemBias[movieID]; ok {
		est += b
	}
	pu, okU := m.UserFactors[userID]
	qi, okI := m.ItemFactors[movieID]
	if okU && okI {
		est += dotProduct(pu, qi)
	}

	if est < core.RatingMin {
		est = core.RatingMin
	}
	if est > core.RatingMax {
		est = core.RatingMax
	}
	return est
}

// dotProduct 计算两个向量的点积；维度不一致按 0 处理（制品损坏的防线在加载侧）。
func dotProduct(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

var _ RatingPredictor = (*SVDModel)(nil)
