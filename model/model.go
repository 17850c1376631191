// Package model 承载离线训练好的评分预测模型。
// 训练过程（矩阵分解的求解方法、超参）不在本库范围内，
// 本库只约定制品的形状和在线侧的预测语义。
package model

// RatingPredictor 预测某用户对某影片的评分估计值。
//
// 契约：
//   - 对训练时没见过的用户/影片也必须给出估计（退化到全局均值），
//     绝不允许 panic——协同召回会对全目录的未评分影片逐一调用它
//   - 纯函数：同样的输入永远返回同样的输出
type RatingPredictor interface {
	// Name 返回模型名称（用于日志/监控）
	Name() string

	// Predict 返回 (userID, movieID) 的评分估计
	Predict(userID, movieID int64) float64
}
