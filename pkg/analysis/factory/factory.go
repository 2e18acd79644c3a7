package factory

import (
	"context"
	"fmt"

	"github.com/iWorld-y/sondeos/pkg/analysis"
	"github.com/iWorld-y/sondeos/pkg/config"
	"github.com/iWorld-y/sondeos/pkg/gateway"
	"github.com/iWorld-y/sondeos/pkg/llmdirect"
)

// NewProvider 根据配置创建分析服务实例
func NewProvider(ctx context.Context, cfg *config.Config) (analysis.Provider, error) {
	provider := cfg.Analysis.Provider
	if provider == "" {
		// 默认回退逻辑：配置了网关地址则走网关
		if cfg.Gateway.BaseURL != "" {
			provider = "gateway"
		} else {
			return nil, fmt.Errorf("analysis provider not configured")
		}
	}

	switch provider {
	case "gateway":
		if cfg.Gateway.BaseURL == "" {
			return nil, fmt.Errorf("gateway base url is missing")
		}
		return gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.Timeout), nil

	case "directo":
		if cfg.LLM.Model == "" {
			return nil, fmt.Errorf("llm model is missing")
		}
		return llmdirect.NewClient(ctx, cfg.LLM, cfg.Concurrency)

	default:
		return nil, fmt.Errorf("unknown analysis provider: %s", provider)
	}
}
