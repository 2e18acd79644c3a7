// Package sources 定义探询上下文各来源的通用接口。
// 具体实现可以是数据库表（internal/data）或 RSS 订阅源（sources/rss）。
package sources

import "context"

// Noticia 新闻来源的原始记录
type Noticia struct {
	Title   string
	Excerpt string
	Source  string
	URL     string
	Date    string
}

// Documento 个人文档库（Codex）的原始记录
type Documento struct {
	Title     string
	Content   string
	Tags      []string
	CreatedAt string
}

// Tendencias 趋势来源的原始快照
type Tendencias struct {
	TopKeywords   []Keyword
	WordCloudData []map[string]any
	About         []map[string]any
}

// Keyword 单个热门关键词
type Keyword struct {
	Keyword string
	Count   int
}

// Monitoreo 一次社媒监测抓取的存档
type Monitoreo struct {
	ID             string
	GeneratedTitle string
	QueryClean     string
	QueryOriginal  string
	Herramienta    string
	Categoria      string
	CreatedAt      string
	TweetCount     int
}

// NewsSource 新闻来源
type NewsSource interface {
	GetLatestNews(ctx context.Context, limit int) ([]Noticia, error)
}

// CodexSource 个人文档库来源
type CodexSource interface {
	GetCodexItemsByUser(ctx context.Context, userID string) ([]Documento, error)
}

// TrendsSource 趋势来源
type TrendsSource interface {
	GetLatestTrends(ctx context.Context) (*Tendencias, error)
}

// MonitoringSource 监测抓取来源。找不到记录时返回 (nil, nil)。
type MonitoringSource interface {
	GetRecentScrapeByID(ctx context.Context, id string) (*Monitoreo, error)
}
