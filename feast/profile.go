package feast

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cinematch/cinekit/core"
	"github.com/cinematch/cinekit/pkg/conv"
)

// 画像特征视图里约定的特征名。偏好列表既可能是 string list，
// 也可能是注册流程写入的逗号分隔字符串，解析侧两种都认。
const (
	FeatureDisplayName        = "user_profile:display_name"
	FeaturePreferredGenres    = "user_profile:preferred_genres"
	FeaturePreferredLanguages = "user_profile:preferred_languages"
	FeatureActivityBucket     = "user_profile:activity_bucket"
)

// ProfileService 从 Feature Store 拉取用户画像。
type ProfileService struct {
	Client Client

	// Features 为空时拉取上面四个默认特征
	Features []string
}

// Profile 拉取并解析单个用户的画像。特征服务查不到该用户时
// 返回只带 UserID 的空画像，而不是错误。
func (s *ProfileService) Profile(ctx context.Context, userID int64) (*core.UserProfile, error) {
	if s.Client == nil {
		return nil, fmt.Errorf("feast profile: no client")
	}

	features := s.Features
	if len(features) == 0 {
		features = []string{
			FeatureDisplayName,
			FeaturePreferredGenres,
			FeaturePreferredLanguages,
			FeatureActivityBucket,
		}
	}

	resp, err := s.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   features,
		EntityRows: []map[string]any{{"user_id": userID}},
	})
	if err != nil {
		return nil, fmt.Errorf("feast profile: user %d: %w", userID, err)
	}
	if len(resp.FeatureVectors) == 0 {
		return &core.UserProfile{UserID: userID}, nil
	}

	return parseProfile(userID, resp.FeatureVectors[0].Values), nil
}

// Enrich 把画像填进请求上下文。拉取失败只打日志并保持 rctx.User
// 为空——画像是增强信号，不能因为它挂掉让推荐请求失败。
func (s *ProfileService) Enrich(ctx context.Context, rctx *core.RecommendContext) {
	if rctx == nil || rctx.User != nil {
		return
	}
	profile, err := s.Profile(ctx, rctx.UserID)
	if err != nil {
		log.Printf("cinekit: profile fetch for user %d degraded to empty: %v", rctx.UserID, err)
		return
	}
	rctx.User = profile
}

func parseProfile(userID int64, values map[string]any) *core.UserProfile {
	p := &core.UserProfile{
		UserID:     userID,
		UpdateTime: time.Now(),
	}

	if name, ok := values[FeatureDisplayName].(string); ok {
		p.DisplayName = name
	}
	for _, genre := range stringList(values[FeaturePreferredGenres]) {
		if p.PreferredGenres == nil {
			p.PreferredGenres = make(map[string]float64)
		}
		p.PreferredGenres[genre] = 1.0
	}
	p.PreferredLanguages = stringList(values[FeaturePreferredLanguages])
	if bucket, ok := values[FeatureActivityBucket].(string); ok && bucket != "" {
		p.SetBucket("activity", bucket)
	}
	return p
}

// stringList 把特征值规整成去空白的字符串切片。
func stringList(v any) []string {
	var raw []string
	switch val := v.(type) {
	case []string:
		raw = val
	case string:
		raw = strings.Split(val, ",")
	case []any:
		raw = conv.SliceAnyToString(val)
	default:
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
