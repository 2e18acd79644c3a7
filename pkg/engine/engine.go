// Package engine 探询核心引擎：聚合各来源上下文并调用分析服务。
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bytedance/gg/gson"
	"github.com/google/uuid"

	"github.com/iWorld-y/sondeos/pkg/analysis"
	"github.com/iWorld-y/sondeos/pkg/logger"
	dm "github.com/iWorld-y/sondeos/pkg/model"
	"github.com/iWorld-y/sondeos/pkg/relevance"
	"github.com/iWorld-y/sondeos/pkg/sources"
)

const (
	// resumenMax 进入上下文的正文截断长度
	resumenMax = 300
	// maxRegistros 每个类别最多携带的记录数
	maxRegistros = 5
	// newsFetchLimit 过滤前拉取的新闻条数
	newsFetchLimit = 10
)

// 校验错误：在任何网络调用之前拦截，属于用户输入问题而非系统故障
var (
	ErrPreguntaCorta = errors.New("la pregunta debe tener al menos 3 caracteres")
	ErrSinCategorias = errors.New("debe seleccionar al menos una categoría de contexto")
)

// Fuentes 上下文来源集合，任意一项可为 nil 表示该来源未接入
type Fuentes struct {
	News       sources.NewsSource
	Codex      sources.CodexSource
	Trends     sources.TrendsSource
	Monitoring sources.MonitoringSource
}

// HistorialStore 探询历史的持久化接口
type HistorialStore interface {
	SaveSondeo(ctx context.Context, entry *dm.SondeoHistorial) error
}

// Engine 核心处理引擎
type Engine struct {
	fuentes   Fuentes
	provider  analysis.Provider
	historial HistorialStore // 可为 nil：纯内存运行，不落历史
}

// NewEngine 创建引擎实例
func NewEngine(fuentes Fuentes, provider analysis.Provider, historial HistorialStore) *Engine {
	return &Engine{
		fuentes:   fuentes,
		provider:  provider,
		historial: historial,
	}
}

// Validar 校验探询输入，必须在任何 I/O 之前调用
func Validar(consulta *dm.Consulta) error {
	if utf8.RuneCountInString(strings.TrimSpace(consulta.Pregunta)) < 3 {
		return ErrPreguntaCorta
	}
	if len(consulta.Categorias) == 0 {
		return ErrSinCategorias
	}
	for _, cat := range consulta.Categorias {
		if !cat.Valida() {
			return fmt.Errorf("%w: categoría desconocida %q", ErrSinCategorias, cat)
		}
	}
	return nil
}

// Aggregate 为一次探询组装复合上下文。
// 各类别独立抓取：单个类别失败只记日志并省略对应键，不中断整体。
func (e *Engine) Aggregate(ctx context.Context, consulta *dm.Consulta) (*dm.ContextoAgregado, error) {
	resultado := &dm.ContextoAgregado{
		Pregunta:     consulta.Pregunta,
		Categorias:   consulta.Categorias,
		TipoContexto: tipoContexto(consulta.Categorias),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, cat := range consulta.Categorias {
		wg.Add(1)
		go func(cat dm.Categoria) {
			defer wg.Done()

			switch cat {
			case dm.CategoriaTendencias:
				seccion, err := e.armarTendencias(ctx, consulta)
				if err != nil {
					logger.Log.Errorf("抓取趋势上下文失败: %v", err)
					return
				}
				mu.Lock()
				resultado.Tendencias = seccion
				mu.Unlock()

			case dm.CategoriaNoticias:
				noticias, err := e.armarNoticias(ctx, consulta.Pregunta)
				if err != nil {
					logger.Log.Errorf("抓取新闻上下文失败: %v", err)
					return
				}
				mu.Lock()
				resultado.Noticias = noticias
				mu.Unlock()

			case dm.CategoriaCodex:
				documentos, err := e.armarDocumentos(ctx, consulta.Pregunta, consulta.Usuario)
				if err != nil {
					logger.Log.Errorf("抓取文档上下文失败: %v", err)
					return
				}
				mu.Lock()
				resultado.Documentos = documentos
				mu.Unlock()

			case dm.CategoriaMonitoreo:
				monitoreos := e.armarMonitoreos(ctx, consulta.Selecciones[dm.CategoriaMonitoreo])
				mu.Lock()
				resultado.Monitoreos = monitoreos
				mu.Unlock()
			}
		}(cat)
	}

	wg.Wait()

	logger.Log.Debugf("上下文聚合完成 [%s]: %s", resultado.TipoContexto, gson.ToString(resultado))
	return resultado, nil
}

// armarTendencias 组装趋势段。用户显式勾选时原样使用；
// 否则取最新趋势快照，不按问题过滤（趋势本身就是“当下”信号）。
func (e *Engine) armarTendencias(ctx context.Context, consulta *dm.Consulta) (*dm.TendenciasContexto, error) {
	if len(consulta.TendenciasSeleccionadas) > 0 {
		return &dm.TendenciasContexto{Seleccionadas: consulta.TendenciasSeleccionadas}, nil
	}

	if e.fuentes.Trends == nil {
		return nil, fmt.Errorf("fuente de tendencias no configurada")
	}
	tendencias, err := e.fuentes.Trends.GetLatestTrends(ctx)
	if err != nil {
		return nil, err
	}

	seccion := &dm.TendenciasContexto{
		NubePalabras: tendencias.WordCloudData,
		AcercaDe:     tendencias.About,
	}
	for _, kw := range tendencias.TopKeywords {
		seccion.PalabrasClave = append(seccion.PalabrasClave, dm.PalabraClave{
			Palabra: kw.Keyword,
			Conteo:  kw.Count,
		})
	}
	return seccion, nil
}

// armarNoticias 拉取最新新闻并按相关性过滤。
// 类别被显式请求，因此零命中时返回非 nil 空切片而不是省略键。
func (e *Engine) armarNoticias(ctx context.Context, pregunta string) ([]dm.NoticiaContexto, error) {
	if e.fuentes.News == nil {
		return nil, fmt.Errorf("fuente de noticias no configurada")
	}
	noticias, err := e.fuentes.News.GetLatestNews(ctx, newsFetchLimit)
	if err != nil {
		return nil, err
	}

	resultado := make([]dm.NoticiaContexto, 0, maxRegistros)
	for _, n := range noticias {
		if len(resultado) >= maxRegistros {
			break
		}
		if !relevance.EsRelevante(n.Title+" "+n.Excerpt, pregunta) {
			continue
		}
		resultado = append(resultado, dm.NoticiaContexto{
			Titulo:    n.Title,
			Contenido: relevance.Resumir(n.Excerpt, resumenMax),
			Fuente:    n.Source,
			URL:       n.URL,
			Fecha:     n.Date,
		})
	}
	return resultado, nil
}

// armarDocumentos 拉取用户文档库并按相关性过滤
func (e *Engine) armarDocumentos(ctx context.Context, pregunta, usuario string) ([]dm.DocumentoContexto, error) {
	if e.fuentes.Codex == nil {
		return nil, fmt.Errorf("fuente de documentos no configurada")
	}
	documentos, err := e.fuentes.Codex.GetCodexItemsByUser(ctx, usuario)
	if err != nil {
		return nil, err
	}

	resultado := make([]dm.DocumentoContexto, 0, maxRegistros)
	for _, d := range documentos {
		if len(resultado) >= maxRegistros {
			break
		}
		if !relevance.EsRelevante(d.Title+" "+d.Content, pregunta) {
			continue
		}
		resultado = append(resultado, dm.DocumentoContexto{
			Titulo:    d.Title,
			Contenido: relevance.Resumir(d.Content, resumenMax),
			Tags:      d.Tags,
			Fecha:     d.CreatedAt,
		})
	}
	return resultado, nil
}

// armarMonitoreos 并发抓取用户勾选的监测记录。
// 单个 ID 失败只记日志并跳过，结果保持勾选顺序。
// 该类别没有“最新”兜底：没有显式勾选就返回 nil，键整体省略。
func (e *Engine) armarMonitoreos(ctx context.Context, ids []string) []dm.MonitoreoContexto {
	if len(ids) == 0 || e.fuentes.Monitoring == nil {
		return nil
	}
	resultado := make([]dm.MonitoreoContexto, 0, len(ids))

	porIndice := make([]*dm.MonitoreoContexto, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			captura, err := e.fuentes.Monitoring.GetRecentScrapeByID(ctx, id)
			if err != nil {
				logger.Log.Errorf("抓取监测记录失败 [%s]: %v", id, err)
				return
			}
			if captura == nil {
				logger.Log.Warnf("监测记录不存在 [%s]", id)
				return
			}
			porIndice[i] = convertirMonitoreo(captura)
		}(i, id)
	}
	wg.Wait()

	for _, m := range porIndice {
		if m != nil {
			resultado = append(resultado, *m)
		}
	}
	return resultado
}

func convertirMonitoreo(captura *sources.Monitoreo) *dm.MonitoreoContexto {
	titulo := captura.GeneratedTitle
	if titulo == "" {
		titulo = captura.QueryOriginal
	}
	consulta := captura.QueryClean
	if consulta == "" {
		consulta = captura.QueryOriginal
	}
	return &dm.MonitoreoContexto{
		ID:          captura.ID,
		Titulo:      titulo,
		Consulta:    consulta,
		Herramienta: captura.Herramienta,
		Categoria:   captura.Categoria,
		Fecha:       captura.CreatedAt,
		TweetCount:  captura.TweetCount,
	}
}

// tipoContexto 按字典序拼接类别名
func tipoContexto(categorias []dm.Categoria) string {
	nombres := make([]string, 0, len(categorias))
	for _, cat := range categorias {
		nombres = append(nombres, string(cat))
	}
	sort.Strings(nombres)
	return strings.Join(nombres, "+")
}

// Sondear 执行一次完整探询：校验、聚合、分析、落历史。
// 网关错误原样向上传播；历史写入失败只记日志。
func (e *Engine) Sondear(ctx context.Context, consulta *dm.Consulta, token string) (*dm.SondeoResult, error) {
	if err := Validar(consulta); err != nil {
		return nil, err
	}

	logger.Log.Infof("开始探询 [usuario=%s, tipo=%s]: %s", consulta.Usuario, tipoContexto(consulta.Categorias), consulta.Pregunta)

	contexto, err := e.Aggregate(ctx, consulta)
	if err != nil {
		return nil, err
	}

	resultado, err := e.provider.Analizar(ctx, &analysis.Request{
		Contexto: contexto,
		Pregunta: consulta.Pregunta,
		Usuario:  consulta.Usuario,
		Token:    token,
	})
	if err != nil {
		return nil, err
	}

	if e.historial != nil {
		entry := &dm.SondeoHistorial{
			ID:                  uuid.NewString(),
			Usuario:             consulta.Usuario,
			Pregunta:            consulta.Pregunta,
			RespuestaLLM:        resultado.LLMResponse,
			DatosAnalisis:       resultado.DatosAnalisis,
			ContextosUtilizados: consulta.Categorias,
			ModeloIA:            resultado.Modelo,
			TokensUtilizados:    resultado.Tokens,
			CreditosUtilizados:  len(consulta.Categorias),
			CreatedAt:           time.Now().Format(time.RFC3339),
		}
		if err := e.historial.SaveSondeo(ctx, entry); err != nil {
			logger.Log.Errorf("保存探询历史失败: %v", err)
		}
	}

	return resultado, nil
}
