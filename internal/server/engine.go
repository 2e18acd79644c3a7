package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/sondeos/internal/conf"
	"github.com/iWorld-y/sondeos/internal/data"
	"github.com/iWorld-y/sondeos/pkg/analysis/factory"
	"github.com/iWorld-y/sondeos/pkg/config"
	"github.com/iWorld-y/sondeos/pkg/engine"
	scLogger "github.com/iWorld-y/sondeos/pkg/logger"
	"github.com/iWorld-y/sondeos/pkg/sources"
	"github.com/iWorld-y/sondeos/pkg/sources/rss"
)

// NewEngine 初始化探询核心引擎
func NewEngine(c *conf.Sondeo, fuentesDB *data.FuentesRepo, historial engine.HistorialStore, logger log.Logger) (*engine.Engine, error) {
	helper := log.NewHelper(logger)

	// 将 internal/conf.Sondeo 转换为 pkg/config.Config
	cfg := &config.Config{}
	if c.Analysis != nil {
		cfg.Analysis = config.AnalysisConfig{Provider: c.Analysis.Provider}
	}
	if c.Gateway != nil {
		cfg.Gateway = config.GatewayConfig{
			BaseURL: c.Gateway.BaseUrl,
			Timeout: int(c.Gateway.Timeout),
		}
	}
	if c.Llm != nil {
		cfg.LLM = config.LLMConfig{
			BaseURL: c.Llm.BaseUrl,
			APIKey:  c.Llm.ApiKey,
			Model:   c.Llm.Model,
		}
	}
	if c.News != nil {
		cfg.News = config.NewsConfig{
			Provider: c.News.Provider,
			Feeds:    c.News.Feeds,
			Timeout:  int(c.News.Timeout),
		}
	}
	if c.Log != nil {
		cfg.Log = config.LogConfig{Level: c.Log.Level, File: c.Log.File}
	}
	if c.Concurrency != nil {
		cfg.Concurrency = config.ConcurrencyConfig{
			QPS: int(c.Concurrency.Qps),
			RPM: int(c.Concurrency.Rpm),
		}
	}

	// 初始化核心日志
	if err := scLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		helper.Errorf("Failed to init sondeo logger: %v", err)
		_ = scLogger.InitLogger("info", "") // 降级处理
	}

	// 初始化分析服务
	provider, err := factory.NewProvider(context.Background(), cfg)
	if err != nil {
		helper.Errorf("Failed to init analysis provider: %v", err)
		return nil, err
	}

	// 新闻来源按配置选择：RSS 订阅或数据库表
	var news sources.NewsSource = fuentesDB
	if cfg.News.Provider == "rss" && len(cfg.News.Feeds) > 0 {
		news = rss.NewClient(cfg.News.Feeds, cfg.News.Timeout)
	}

	fuentes := engine.Fuentes{
		News:       news,
		Codex:      fuentesDB,
		Trends:     fuentesDB,
		Monitoring: fuentesDB,
	}

	return engine.NewEngine(fuentes, provider, historial), nil
}
