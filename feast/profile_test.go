package feast

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/cinematch/cinekit/core"
)

// stubClient 返回固定特征或固定错误。
type stubClient struct {
	values map[string]any
	err    error
}

func (c *stubClient) GetOnlineFeatures(_ context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &GetOnlineFeaturesResponse{
		FeatureVectors: []FeatureVector{
			{Values: c.values, EntityRow: req.EntityRows[0]},
		},
	}, nil
}

func (c *stubClient) Close() error { return nil }

func TestProfileService_Profile(t *testing.T) {
	svc := &ProfileService{Client: &stubClient{values: map[string]any{
		FeatureDisplayName:        "Ada",
		FeaturePreferredGenres:    []string{"Sci-Fi", "Action"},
		FeaturePreferredLanguages: "en, ko",
		FeatureActivityBucket:     "heavy",
	}}}

	p, err := svc.Profile(context.Background(), 7)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if p.UserID != 7 || p.DisplayName != "Ada" {
		t.Errorf("profile = %+v", p)
	}
	if p.PreferredGenres["Sci-Fi"] != 1.0 || p.PreferredGenres["Action"] != 1.0 {
		t.Errorf("PreferredGenres = %v", p.PreferredGenres)
	}
	// 逗号分隔的字符串也能解析，且去掉空白
	if !reflect.DeepEqual(p.PreferredLanguages, []string{"en", "ko"}) {
		t.Errorf("PreferredLanguages = %v", p.PreferredLanguages)
	}
	if bucket := p.GetBucket("activity"); bucket != "heavy" {
		t.Errorf("activity bucket = %q, want heavy", bucket)
	}
}

func TestProfileService_EnrichDegradesOnError(t *testing.T) {
	svc := &ProfileService{Client: &stubClient{err: errors.New("feature server down")}}
	rctx := &core.RecommendContext{UserID: 7}

	svc.Enrich(context.Background(), rctx)

	if rctx.User != nil {
		t.Error("特征服务不可用时画像应保持为空，请求继续")
	}
}

func TestProfileService_EnrichKeepsExistingProfile(t *testing.T) {
	existing := &core.UserProfile{UserID: 7, DisplayName: "preset"}
	svc := &ProfileService{Client: &stubClient{values: map[string]any{
		FeatureDisplayName: "Ada",
	}}}
	rctx := &core.RecommendContext{UserID: 7, User: existing}

	svc.Enrich(context.Background(), rctx)

	if rctx.User != existing {
		t.Error("已有画像不应被覆盖")
	}
}

func TestStringList(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"string slice", []string{"a", "b"}, []string{"a", "b"}},
		{"comma string", "a, b ,c", []string{"a", "b", "c"}},
		{"any slice", []any{"a", "b"}, []string{"a", "b"}},
		{"empty string", "  ,  ", nil},
		{"unsupported type", 42, nil},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stringList(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("stringList(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
