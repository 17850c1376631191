package model

import (
	"math"
	"testing"

	"github.com/cinematch/cinekit/core"
)

func TestSVDModel_Predict(t *testing.T) {
	m := &SVDModel{
		GlobalMean: 3.5,
		UserBias:   map[int64]float64{1: 0.3},
		ItemBias:   map[int64]float64{10: 0.2},
		UserFactors: map[int64][]float64{
			1: {0.5, -0.2},
		},
		ItemFactors: map[int64][]float64{
			10: {0.4, 0.1},
		},
	}

	tests := []struct {
		name    string
		userID  int64
		movieID int64
		want    float64
	}{
		{
			// 3.5 + 0.3 + 0.2 + (0.5*0.4 + -0.2*0.1) = 4.18
			name:    "full terms",
			userID:  1,
			movieID: 10,
			want:    4.18,
		},
		{
			// 未知影片：丢掉 bi 和点积项 → 3.5 + 0.3
			name:    "unknown movie drops item terms",
			userID:  1,
			movieID: 999,
			want:    3.8,
		},
		{
			// 未知用户：丢掉 bu 和点积项 → 3.5 + 0.2
			name:    "unknown user drops user terms",
			userID:  999,
			movieID: 10,
			want:    3.7,
		},
		{
			// 双未知：退化为全局均值
			name:    "both unknown falls back to global mean",
			userID:  999,
			movieID: 999,
			want:    3.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Predict(tt.userID, tt.movieID)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Predict(%d, %d) = %v, want %v", tt.userID, tt.movieID, got, tt.want)
			}
		})
	}
}

func TestSVDModel_PredictClipping(t *testing.T) {
	high := &SVDModel{
		GlobalMean: 4.8,
		UserBias:   map[int64]float64{1: 1.0},
		ItemBias:   map[int64]float64{10: 1.0},
	}
	if got := high.Predict(1, 10); got != core.RatingMax {
		t.Errorf("超出上界应裁剪到 %v，got %v", core.RatingMax, got)
	}

	low := &SVDModel{
		GlobalMean: 1.2,
		UserBias:   map[int64]float64{1: -2.0},
	}
	if got := low.Predict(1, 10); got != core.RatingMin {
		t.Errorf("低于下界应裁剪到 %v，got %v", core.RatingMin, got)
	}
}

func TestSVDModel_FactorLengthMismatch(t *testing.T) {
	m := &SVDModel{
		GlobalMean:  3.0,
		UserFactors: map[int64][]float64{1: {0.5, 0.5}},
		ItemFactors: map[int64][]float64{10: {0.5}},
	}
	// 维度不一致时点积按 0 处理，不 panic
	if got := m.Predict(1, 10); got != 3.0 {
		t.Errorf("got %v, want 3.0", got)
	}
}
