package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cinematch/cinekit/core"
)

// StoreRatings 把任意 core.Store（通常是 Redis）适配成 RatingStore：
// 每个用户的评分以 JSON 数组存在 ratings:user:{id} 键下。线上部署
// 时评分服务写入该键，推荐侧只读。
type StoreRatings struct {
	Store core.Store
	// KeyPrefix 为空时用默认前缀 "ratings:user:"
	KeyPrefix string
}

var _ core.RatingStore = (*StoreRatings)(nil)

func (s *StoreRatings) Name() string { return "ratings.store" }

func (s *StoreRatings) key(userID int64) string {
	prefix := s.KeyPrefix
	if prefix == "" {
		prefix = "ratings:user:"
	}
	return fmt.Sprintf("%s%d", prefix, userID)
}

func (s *StoreRatings) UserRatings(ctx context.Context, userID int64) ([]core.Rating, error) {
	if s.Store == nil {
		return nil, fmt.Errorf("store ratings: no backing store")
	}

	raw, err := s.Store.Get(ctx, s.key(userID))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store ratings: get user %d: %w", userID, err)
	}

	var ratings []core.Rating
	if err := json.Unmarshal(raw, &ratings); err != nil {
		return nil, fmt.Errorf("store ratings: decode user %d: %w", userID, err)
	}
	return ratings, nil
}

// SaveUserRatings 整体覆写用户的评分快照。
func (s *StoreRatings) SaveUserRatings(ctx context.Context, userID int64, ratings []core.Rating) error {
	if s.Store == nil {
		return fmt.Errorf("store ratings: no backing store")
	}
	raw, err := json.Marshal(ratings)
	if err != nil {
		return fmt.Errorf("store ratings: encode user %d: %w", userID, err)
	}
	return s.Store.Set(ctx, s.key(userID), raw)
}
