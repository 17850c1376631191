package core

import "time"

// UserProfile 是用户画像：注册后的偏好设置流程写入，推荐链路只读。
//
// 它不是某一个 Node，而是：
//  - 被所有 Node 共享（偏好过滤、加权、实验分桶）
//  - 可以由 Feature Store（见 feast 包）在请求入口处拉取填充
type UserProfile struct {
	UserID      int64
	DisplayName string

	// 偏好设置（profile setup 流程的产出）
	// key: 类型名，value: weight (0-1]
	PreferredGenres    map[string]float64
	PreferredLanguages []string // 例如 ["en", "ko"]

	// 行为统计（短期）
	RecentlyViewed []int64 // 最近浏览的影片 ID

	// 控制与实验（策略切换）
	Buckets map[string]string // 例如 {"dashboard": "v2"}

	// 元数据
	UpdateTime time.Time
}

// NewUserProfile 创建一个新的用户画像。
func NewUserProfile(userID int64) *UserProfile {
	return &UserProfile{
		UserID:          userID,
		PreferredGenres: make(map[string]float64),
		Buckets:         make(map[string]string),
		UpdateTime:      time.Now(),
	}
}

// PrefersLanguage 检查语言是否在偏好列表中；未设置偏好时视为都接受。
func (p *UserProfile) PrefersLanguage(lang string) bool {
	if len(p.PreferredLanguages) == 0 {
		return true
	}
	for _, l := range p.PreferredLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// GenreWeight 获取类型偏好权重，未设置返回 0。
func (p *UserProfile) GenreWeight(genre string) float64 {
	if p.PreferredGenres == nil {
		return 0
	}
	return p.PreferredGenres[genre]
}

// AddRecentlyViewed 追加最近浏览记录，去重并限制长度。
func (p *UserProfile) AddRecentlyViewed(movieID int64, maxSize int) {
	for _, id := range p.RecentlyViewed {
		if id == movieID {
			return
		}
	}
	p.RecentlyViewed = append(p.RecentlyViewed, movieID)
	if maxSize > 0 && len(p.RecentlyViewed) > maxSize {
		p.RecentlyViewed = p.RecentlyViewed[len(p.RecentlyViewed)-maxSize:]
	}
	p.UpdateTime = time.Now()
}

// SetBucket 设置实验桶。
func (p *UserProfile) SetBucket(key, value string) {
	if p.Buckets == nil {
		p.Buckets = make(map[string]string)
	}
	p.Buckets[key] = value
}

// GetBucket 获取实验桶值。
func (p *UserProfile) GetBucket(key string) string {
	if p.Buckets == nil {
		return ""
	}
	return p.Buckets[key]
}
