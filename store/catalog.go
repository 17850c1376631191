package store

import (
	"context"
	"sync"

	"github.com/cinematch/cinekit/core"
)

// MemoryCatalog 是内存实现的影片目录，保持加载时的影片顺序——
// 协同召回的候选枚举顺序以目录顺序为准，决定同分时的先后。
type MemoryCatalog struct {
	mu      sync.RWMutex
	movies  []core.Movie
	byID    map[int64]int
	byTitle map[string]int // 标题重复时保留首个，与相似度索引的行解析一致
}

func NewMemoryCatalog(movies []core.Movie) *MemoryCatalog {
	c := &MemoryCatalog{
		movies:  make([]core.Movie, len(movies)),
		byID:    make(map[int64]int, len(movies)),
		byTitle: make(map[string]int, len(movies)),
	}
	copy(c.movies, movies)
	for i, m := range c.movies {
		if _, ok := c.byID[m.ID]; !ok {
			c.byID[m.ID] = i
		}
		if _, ok := c.byTitle[m.Title]; !ok {
			c.byTitle[m.Title] = i
		}
	}
	return c
}

var _ core.CatalogStore = (*MemoryCatalog)(nil)

func (c *MemoryCatalog) Name() string { return "catalog.memory" }

func (c *MemoryCatalog) AllMovies(ctx context.Context) ([]core.Movie, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]core.Movie, len(c.movies))
	copy(out, c.movies)
	return out, nil
}

func (c *MemoryCatalog) MovieByID(ctx context.Context, id int64) (core.Movie, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.byID[id]
	if !ok {
		return core.Movie{}, core.ErrMovieNotFound
	}
	return c.movies[i], nil
}

func (c *MemoryCatalog) MovieByTitle(ctx context.Context, title string) (core.Movie, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.byTitle[title]
	if !ok {
		return core.Movie{}, core.ErrMovieNotFound
	}
	return c.movies[i], nil
}

// MemoryRatings 是内存实现的评分表，按用户分桶。
type MemoryRatings struct {
	mu     sync.RWMutex
	byUser map[int64][]core.Rating
}

func NewMemoryRatings(ratings []core.Rating) *MemoryRatings {
	r := &MemoryRatings{byUser: make(map[int64][]core.Rating)}
	for _, rt := range ratings {
		r.byUser[rt.UserID] = append(r.byUser[rt.UserID], rt)
	}
	return r
}

var _ core.RatingStore = (*MemoryRatings)(nil)

func (r *MemoryRatings) Name() string { return "ratings.memory" }

// UserRatings 返回用户的全部评分。无评分用户返回空切片，
// 不是错误——冷启动是合法状态。
func (r *MemoryRatings) UserRatings(ctx context.Context, userID int64) ([]core.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs := r.byUser[userID]
	out := make([]core.Rating, len(rs))
	copy(out, rs)
	return out, nil
}

// Add 追加一条评分（仪表盘的打分入口用）。同一用户对同一影片
// 重复打分时覆盖旧值。
func (r *MemoryRatings) Add(rating core.Rating) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs := r.byUser[rating.UserID]
	for i, old := range rs {
		if old.MovieID == rating.MovieID {
			rs[i] = rating
			return
		}
	}
	r.byUser[rating.UserID] = append(rs, rating)
}
