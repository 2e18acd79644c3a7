// Package gateway 外部分析网关的 HTTP 客户端。
// 网关返回的 JSON 形状不保证统一：答案可能嵌套在 resultado 下，
// 也可能平铺在顶层，因此按固定优先级的抽取链做归一化。
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iWorld-y/sondeos/pkg/analysis"
	"github.com/iWorld-y/sondeos/pkg/demo"
	"github.com/iWorld-y/sondeos/pkg/logger"
	"github.com/iWorld-y/sondeos/pkg/model"
)

// respuestaFaltante 网关未返回文本时的占位回答
const respuestaFaltante = "No se obtuvo respuesta del servicio."

// Error 网关返回非 2xx 时携带的错误
type Error struct {
	Status  int
	Mensaje string
}

func (e *Error) Error() string {
	return e.Mensaje
}

// Client 分析网关客户端
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient 创建一个新的网关客户端
func NewClient(baseURL string, timeout int) *Client {
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: t},
	}
}

// Ensure Client implements analysis.Provider
var _ analysis.Provider = (*Client)(nil)

// peticion 发往网关的请求体
type peticion struct {
	Contexto *model.ContextoAgregado `json:"contexto"`
	Pregunta string                  `json:"pregunta"`
	Usuario  string                  `json:"usuario,omitempty"`
}

// Analizar 单次往返调用网关并归一化响应
func (c *Client) Analizar(ctx context.Context, req *analysis.Request) (*model.SondeoResult, error) {
	payload, err := json.Marshal(peticion{
		Contexto: req.Contexto,
		Pregunta: req.Pregunta,
		Usuario:  req.Usuario,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/sondeos", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	httpReq.Header.Add("Content-Type", "application/json")
	// 令牌可选：未认证的调用放行，由网关自行拒绝
	if req.Token != "" {
		httpReq.Header.Add("Authorization", "Bearer "+req.Token)
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &Error{Status: res.StatusCode, Mensaje: extraerMensajeError(body, res.Status)}
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		// 2xx 但响应体不可解析：按失败处理，绝不静默换成演示数据
		return nil, fmt.Errorf("respuesta del gateway no parseable: %w", err)
	}

	return c.normalizar(raw, req), nil
}

// extraerMensajeError 优先取结构化错误信息，否则退回原始文本或状态行
func extraerMensajeError(body []byte, statusLine string) string {
	var estructurado struct {
		Error   string `json:"error"`
		Mensaje string `json:"mensaje"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &estructurado); err == nil {
		for _, m := range []string{estructurado.Error, estructurado.Mensaje, estructurado.Message} {
			if m != "" {
				return m
			}
		}
	}
	if texto := strings.TrimSpace(string(body)); texto != "" {
		return texto
	}
	return statusLine
}

// extractor 从原始响应中取出某个字段的一种可能嵌套
type extractor func(raw map[string]any) (any, bool)

func anidado(claves ...string) extractor {
	return func(raw map[string]any) (any, bool) {
		var actual any = raw
		for _, clave := range claves {
			m, ok := actual.(map[string]any)
			if !ok {
				return nil, false
			}
			if actual, ok = m[clave]; !ok || actual == nil {
				return nil, false
			}
		}
		return actual, true
	}
}

// 抽取链按优先级排列：嵌套形状优先于平铺形状
var (
	extractoresRespuesta = []extractor{
		anidado("resultado", "respuesta"),
		anidado("respuesta_estructurada", "respuesta"),
		anidado("respuesta"),
	}
	extractoresFuentes = []extractor{
		anidado("resultado", "fuentes"),
		anidado("fuentes"),
	}
	extractoresDatos = []extractor{
		anidado("resultado", "datos_analisis"),
		anidado("resultado", "datos_visualizacion"),
		anidado("datos_analisis"),
	}
)

func primero(raw map[string]any, cadena []extractor) (any, bool) {
	for _, ex := range cadena {
		if v, ok := ex(raw); ok {
			return v, true
		}
	}
	return nil, false
}

// normalizar 将异构响应整形为 SondeoResult
func (c *Client) normalizar(raw map[string]any, req *analysis.Request) *model.SondeoResult {
	result := &model.SondeoResult{
		Contexto:    req.Contexto,
		LLMResponse: respuestaFaltante,
	}

	if v, ok := primero(raw, extractoresRespuesta); ok {
		if s, ok := v.(string); ok && s != "" {
			result.LLMResponse = s
		}
	}

	if v, ok := primero(raw, extractoresFuentes); ok {
		result.LLMSources = v
	}

	// 显式返回的空对象是“确实没有数据”的真实回答，不触发演示回退
	if v, ok := primero(raw, extractoresDatos); ok {
		if datos, ok := v.(map[string]any); ok {
			result.DatosAnalisis = datos
		}
	}

	if v, ok := anidado("modelo_ia")(raw); ok {
		if s, ok := v.(string); ok {
			result.Modelo = s
		}
	}
	if v, ok := anidado("tokens_utilizados")(raw); ok {
		if n, ok := v.(float64); ok {
			result.Tokens = int(n)
		}
	}

	// 网关完全没有返回分析数据时退回演示数据集，用首个选中类别生成。
	// 该回退必须可观测：打标记并写告警日志。
	if result.DatosAnalisis == nil {
		var tipo model.Categoria
		if len(req.Contexto.Categorias) > 0 {
			tipo = req.Contexto.Categorias[0]
		}
		logger.Log.Warnf("网关未返回 datos_analisis，使用演示数据回退 [tipo=%s, pregunta=%s]", tipo, req.Pregunta)
		result.DatosAnalisis = demo.Generar(tipo, req.Pregunta)
		result.EsDemo = true
	}

	return result
}
