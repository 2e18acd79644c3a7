// Package rss 基于 RSS 订阅源的新闻来源实现。
package rss

import (
	"context"
	"net/http"
	"time"

	"github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"

	"github.com/iWorld-y/sondeos/pkg/logger"
	"github.com/iWorld-y/sondeos/pkg/sources"
)

// minExcerptLen 摘要短于该长度时尝试抓取正文补全
const minExcerptLen = 80

// Client RSS 新闻客户端
type Client struct {
	feeds   []string
	timeout time.Duration
	parser  *gofeed.Parser
}

// NewClient 创建一个新的 RSS 客户端
func NewClient(feeds []string, timeout int) *Client {
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 30 * time.Second
	}
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: t}
	return &Client{
		feeds:   feeds,
		timeout: t,
		parser:  parser,
	}
}

// Ensure Client implements sources.NewsSource
var _ sources.NewsSource = (*Client)(nil)

// GetLatestNews 拉取各订阅源的最新条目，按源轮询直到凑满 limit 条
func (c *Client) GetLatestNews(ctx context.Context, limit int) ([]sources.Noticia, error) {
	if limit <= 0 {
		limit = 10
	}

	var noticias []sources.Noticia
	for _, feedURL := range c.feeds {
		if len(noticias) >= limit {
			break
		}

		feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			// 单个订阅源失败不影响其余源
			logger.Log.Warnf("无法解析订阅源 [%s]: %v", feedURL, err)
			continue
		}

		fuente := feed.Title
		for _, item := range feed.Items {
			if len(noticias) >= limit {
				break
			}

			excerpt := item.Description
			if len(excerpt) < minExcerptLen && item.Link != "" {
				if fetched, err := fetchAndCleanContent(item.Link, c.timeout); err == nil && len(fetched) > len(excerpt) {
					excerpt = fetched
				}
			}

			fecha := item.Published
			if item.PublishedParsed != nil {
				fecha = item.PublishedParsed.Format(time.DateOnly)
			}

			noticias = append(noticias, sources.Noticia{
				Title:   item.Title,
				Excerpt: excerpt,
				Source:  fuente,
				URL:     item.Link,
				Date:    fecha,
			})
		}
	}

	return noticias, nil
}

// fetchAndCleanContent 抓取文章页面并提取可读正文
func fetchAndCleanContent(url string, timeout time.Duration) (string, error) {
	article, err := readability.FromURL(url, timeout)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}
