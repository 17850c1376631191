// Package artifact 加载离线训练产物：影片目录 CSV、评分表 CSV、
// 相似度矩阵 JSON、SVD 模型参数 JSON。加载只在启动时做一次，
// 任何一件产物损坏都让启动失败，而不是带着半套数据上线。
package artifact

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cinematch/cinekit/core"
	"github.com/cinematch/cinekit/model"
	"github.com/cinematch/cinekit/similarity"
)

// Config 指定各产物文件路径。Similarity / Model 可以为空：
// 对应分支在引擎组装时被禁用。
type Config struct {
	CatalogPath    string `yaml:"catalog" json:"catalog"`
	RatingsPath    string `yaml:"ratings" json:"ratings"`
	SimilarityPath string `yaml:"similarity" json:"similarity"`
	ModelPath      string `yaml:"model" json:"model"`
}

// Bundle 是加载完成的全部产物。
type Bundle struct {
	Movies  []core.Movie
	Ratings []core.Rating
	Index   *similarity.Index
	Model   *model.SVDModel
}

// Load 按配置加载全部产物。
func Load(cfg Config) (*Bundle, error) {
	b := &Bundle{}

	var err error
	if b.Movies, err = LoadCatalogCSV(cfg.CatalogPath); err != nil {
		return nil, fmt.Errorf("artifact: load catalog: %w", err)
	}
	if b.Ratings, err = LoadRatingsCSV(cfg.RatingsPath); err != nil {
		return nil, fmt.Errorf("artifact: load ratings: %w", err)
	}
	if cfg.SimilarityPath != "" {
		if b.Index, err = LoadSimilarity(cfg.SimilarityPath); err != nil {
			return nil, fmt.Errorf("artifact: load similarity: %w", err)
		}
	}
	if cfg.ModelPath != "" {
		if b.Model, err = LoadSVDModel(cfg.ModelPath); err != nil {
			return nil, fmt.Errorf("artifact: load model: %w", err)
		}
	}
	return b, nil
}

// LoadCatalogCSV 读取影片目录。期望表头:
// id,title,overview,genres,original_language,popularity
// 行顺序保留——下游把目录顺序当作同分 tie-break 的依据。
func LoadCatalogCSV(path string) ([]core.Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readCatalog(f)
}

func readCatalog(r io.Reader) ([]core.Movie, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := indexColumns(header)
	for _, required := range []string{"id", "title"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var movies []core.Movie
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		id, err := strconv.ParseInt(field(record, col, "id"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad movie id: %w", line, err)
		}
		m := core.Movie{
			ID:       id,
			Title:    field(record, col, "title"),
			Features: field(record, col, "overview"),
			Genres:   field(record, col, "genres"),
			Language: field(record, col, "original_language"),
		}
		if raw := field(record, col, "popularity"); raw != "" {
			if pop, err := strconv.ParseFloat(raw, 64); err == nil {
				m.Popularity = pop
			}
		}
		movies = append(movies, m)
	}
	return movies, nil
}

// LoadRatingsCSV 读取评分表。期望表头: user_id,movie_id,rating
func LoadRatingsCSV(path string) ([]core.Rating, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readRatings(f)
}

func readRatings(r io.Reader) ([]core.Rating, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := indexColumns(header)
	for _, required := range []string{"user_id", "movie_id", "rating"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var ratings []core.Rating
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		userID, err := strconv.ParseInt(field(record, col, "user_id"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad user id: %w", line, err)
		}
		movieID, err := strconv.ParseInt(field(record, col, "movie_id"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad movie id: %w", line, err)
		}
		rating, err := strconv.ParseFloat(field(record, col, "rating"), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad rating: %w", line, err)
		}
		ratings = append(ratings, core.Rating{
			UserID:  userID,
			MovieID: movieID,
			Rating:  rating,
		})
	}
	return ratings, nil
}

// similarityFile 是离线产出的相似度矩阵 JSON 结构。
type similarityFile struct {
	Titles []string    `json:"titles"`
	Matrix [][]float64 `json:"matrix"`
}

// LoadSimilarity 读取相似度矩阵并构建索引。
func LoadSimilarity(path string) (*similarity.Index, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf similarityFile
	if err := json.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("decode similarity file: %w", err)
	}
	return similarity.NewIndex(sf.Titles, sf.Matrix)
}

// LoadSVDModel 读取 SVD 模型参数。字段名与离线导出脚本约定一致。
func LoadSVDModel(path string) (*model.SVDModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m model.SVDModel
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode model file: %w", err)
	}
	return &m, nil
}

func indexColumns(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	return col
}

func field(record []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
