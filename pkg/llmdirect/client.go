// Package llmdirect 不经外部网关、直连 OpenAI 兼容模型的分析实现。
package llmdirect

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/sondeos/pkg/analysis"
	"github.com/iWorld-y/sondeos/pkg/config"
	"github.com/iWorld-y/sondeos/pkg/demo"
	"github.com/iWorld-y/sondeos/pkg/logger"
	dm "github.com/iWorld-y/sondeos/pkg/model"
)

// Client 直连 LLM 的分析客户端
type Client struct {
	chatModel model.ChatModel
	modelo    string
	limiter   *rate.Limiter
}

// NewClient 创建直连分析客户端
func NewClient(ctx context.Context, cfg config.LLMConfig, cc config.ConcurrencyConfig) (*Client, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	limit := rate.Limit(float64(cc.RPM) / 60.0)
	burst := cc.QPS
	if burst <= 0 {
		burst = 1
	}
	if limit <= 0 {
		limit = rate.Limit(1)
	}

	return &Client{
		chatModel: chatModel,
		modelo:    cfg.Model,
		limiter:   rate.NewLimiter(limit, burst),
	}, nil
}

// Ensure Client implements analysis.Provider
var _ analysis.Provider = (*Client)(nil)

// respuestaLLM 模型返回的严格 JSON 结构
type respuestaLLM struct {
	Respuesta     string         `json:"respuesta"`
	Fuentes       []string       `json:"fuentes"`
	DatosAnalisis map[string]any `json:"datos_analisis"`
}

const prompt = `Eres un analista de opinión pública. Con el contexto adjunto responde la pregunta del usuario.
Devuelve exclusivamente un JSON con este formato, sin marcas markdown:
{
	"respuesta": "análisis en prosa (200-400 palabras)",
	"fuentes": ["fuente 1", "fuente 2"],
	"datos_analisis": {"<data_key>": [{"etiqueta": "...", "valor": 0}]}
}`

// Analizar 组装上下文提示词并调用模型，带 429 退避重试
func (c *Client) Analizar(ctx context.Context, req *analysis.Request) (*dm.SondeoResult, error) {
	contexto, err := json.Marshal(req.Contexto)
	if err != nil {
		return nil, fmt.Errorf("marshal contexto failed: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Contexto agregado (JSON):\n")
	sb.Write(contexto)
	sb.WriteString("\n\nPregunta: ")
	sb.WriteString(req.Pregunta)

	maxRetries := 3
	baseDelay := 2 * time.Second
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		messages := []*schema.Message{
			{Role: schema.System, Content: "Eres un generador de JSON. Devuelve solo la cadena JSON."},
			{Role: schema.User, Content: sb.String() + "\n\n" + prompt},
		}

		resp, err := c.chatModel.Generate(ctx, messages)
		if err != nil {
			if strings.Contains(err.Error(), "429") || strings.Contains(strings.ToLower(err.Error()), "too many requests") {
				lastErr = err
				if i < maxRetries {
					time.Sleep(baseDelay * time.Duration(1<<i))
					continue
				}
			}
			return nil, err
		}

		cleanContent := strings.TrimSpace(resp.Content)
		cleanContent = strings.TrimPrefix(cleanContent, "```json")
		cleanContent = strings.TrimPrefix(cleanContent, "```")
		cleanContent = strings.TrimSuffix(cleanContent, "```")

		var parsed respuestaLLM
		if err := json.Unmarshal([]byte(cleanContent), &parsed); err != nil {
			lastErr = err
			if i < maxRetries {
				continue
			}
			return nil, fmt.Errorf("json unmarshal: %w", err)
		}

		return c.armarResultado(&parsed, req), nil
	}
	return nil, lastErr
}

func (c *Client) armarResultado(parsed *respuestaLLM, req *analysis.Request) *dm.SondeoResult {
	result := &dm.SondeoResult{
		Contexto:      req.Contexto,
		LLMResponse:   parsed.Respuesta,
		DatosAnalisis: parsed.DatosAnalisis,
		Modelo:        c.modelo,
	}
	if result.LLMResponse == "" {
		result.LLMResponse = "No se obtuvo respuesta del servicio."
	}
	if len(parsed.Fuentes) > 0 {
		result.LLMSources = parsed.Fuentes
	}
	// 模型显式返回空对象视为真实回答；只有键缺失才回退演示数据
	if result.DatosAnalisis == nil {
		var tipo dm.Categoria
		if len(req.Contexto.Categorias) > 0 {
			tipo = req.Contexto.Categorias[0]
		}
		logger.Log.Warnf("LLM no devolvió datos_analisis, usando datos de demostración [tipo=%s]", tipo)
		result.DatosAnalisis = demo.Generar(tipo, req.Pregunta)
		result.EsDemo = true
	}
	return result
}
