package analysis

import (
	"context"

	"github.com/iWorld-y/sondeos/pkg/model"
)

// Provider 定义通用的分析服务接口
type Provider interface {
	Analizar(ctx context.Context, req *Request) (*model.SondeoResult, error)
}

// Request 通用分析请求
type Request struct {
	Contexto *model.ContextoAgregado
	Pregunta string
	Usuario  string
	Token    string // 可选的 Bearer 令牌，由上层透传
}
