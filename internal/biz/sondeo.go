package biz

import (
	"context"
	"errors"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/sondeos/pkg/demo"
	"github.com/iWorld-y/sondeos/pkg/engine"
	"github.com/iWorld-y/sondeos/pkg/gateway"
	dm "github.com/iWorld-y/sondeos/pkg/model"
	"github.com/iWorld-y/sondeos/pkg/sources"
)

// Sondeador 探询引擎接口
type Sondeador interface {
	Sondear(ctx context.Context, consulta *dm.Consulta, token string) (*dm.SondeoResult, error)
	Aggregate(ctx context.Context, consulta *dm.Consulta) (*dm.ContextoAgregado, error)
}

// HistorialRepo 探询历史仓库接口
type HistorialRepo interface {
	// SaveSondeo 保存一条历史记录
	SaveSondeo(ctx context.Context, entry *dm.SondeoHistorial) error
	// ListSondeosByUser 按用户读取历史
	ListSondeosByUser(ctx context.Context, usuario string) ([]*dm.SondeoHistorial, error)
}

// SondeoUseCase 探询业务逻辑
type SondeoUseCase struct {
	motor      Sondeador
	historial  HistorialRepo
	tendencias sources.TrendsSource
	log        *log.Helper
}

// NewSondeoUseCase 创建探询业务逻辑实例
func NewSondeoUseCase(motor Sondeador, historial HistorialRepo, tendencias sources.TrendsSource, logger log.Logger) *SondeoUseCase {
	return &SondeoUseCase{
		motor:      motor,
		historial:  historial,
		tendencias: tendencias,
		log:        log.NewHelper(logger),
	}
}

// Sondear 执行一次探询，并把引擎错误翻译为 API 错误。
// 校验错误是用户输入问题，不落系统错误日志；网关错误原样透传消息。
func (uc *SondeoUseCase) Sondear(ctx context.Context, consulta *dm.Consulta, token string) (*dm.SondeoResult, error) {
	resultado, err := uc.motor.Sondear(ctx, consulta, token)
	if err != nil {
		if errors.Is(err, engine.ErrPreguntaCorta) || errors.Is(err, engine.ErrSinCategorias) {
			return nil, kerrors.BadRequest("VALIDATION", err.Error())
		}
		var gerr *gateway.Error
		if errors.As(err, &gerr) {
			uc.log.Errorf("分析网关返回错误 [status=%d]: %s", gerr.Status, gerr.Mensaje)
			return nil, kerrors.New(502, "GATEWAY_ERROR", gerr.Mensaje)
		}
		uc.log.Errorf("探询执行失败: %v", err)
		return nil, err
	}
	return resultado, nil
}

// Historial 按用户读取探询历史
func (uc *SondeoUseCase) Historial(ctx context.Context, usuario string) ([]*dm.SondeoHistorial, error) {
	if usuario == "" {
		return nil, kerrors.BadRequest("VALIDATION", "usuario requerido")
	}
	return uc.historial.ListSondeosByUser(ctx, usuario)
}

// Demo 返回带标记的演示数据集
func (uc *SondeoUseCase) Demo(tipo dm.Categoria, pregunta string) map[string]any {
	return demo.Generar(tipo, pregunta)
}

// UltimasTendencias 给前端选择器提供最新趋势快照
func (uc *SondeoUseCase) UltimasTendencias(ctx context.Context) (*sources.Tendencias, error) {
	if uc.tendencias == nil {
		return nil, kerrors.New(503, "TRENDS_UNAVAILABLE", "fuente de tendencias no configurada")
	}
	return uc.tendencias.GetLatestTrends(ctx)
}
