package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/sondeos/internal/biz"
	dm "github.com/iWorld-y/sondeos/pkg/model"
)

// SondeoService 探询 HTTP 服务
type SondeoService struct {
	uc  *biz.SondeoUseCase
	log *log.Helper
}

func NewSondeoService(uc *biz.SondeoUseCase, logger log.Logger) *SondeoService {
	return &SondeoService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// SondearReq 发起探询的请求体
type SondearReq struct {
	Pregunta                string                     `json:"pregunta"`
	Categorias              []dm.Categoria             `json:"categorias"`
	SeleccionesMonitoreo    []string                   `json:"selecciones_monitoreo,omitempty"`
	TendenciasSeleccionadas []dm.TendenciaSeleccionada `json:"tendencias_seleccionadas,omitempty"`
	Usuario                 string                     `json:"usuario"`
}

// HistorialReply 历史查询响应
type HistorialReply struct {
	Sondeos []*dm.SondeoHistorial `json:"sondeos"`
	Total   int                   `json:"total"`
}

// DemoReply 演示数据响应，EsDemo 恒为 true 以便前端区分
type DemoReply struct {
	DatosAnalisis map[string]any `json:"datos_analisis"`
	EsDemo        bool           `json:"modo_demo"`
}

// Sondear 执行一次探询
func (s *SondeoService) Sondear(ctx context.Context, req *SondearReq, token string) (*dm.SondeoResult, error) {
	consulta := &dm.Consulta{
		Pregunta:                req.Pregunta,
		Categorias:              req.Categorias,
		TendenciasSeleccionadas: req.TendenciasSeleccionadas,
		Usuario:                 req.Usuario,
	}
	if len(req.SeleccionesMonitoreo) > 0 {
		consulta.Selecciones = map[dm.Categoria][]string{
			dm.CategoriaMonitoreo: req.SeleccionesMonitoreo,
		}
	}
	return s.uc.Sondear(ctx, consulta, token)
}

// Historial 查询用户的探询历史
func (s *SondeoService) Historial(ctx context.Context, usuario string) (*HistorialReply, error) {
	sondeos, err := s.uc.Historial(ctx, usuario)
	if err != nil {
		return nil, err
	}
	if sondeos == nil {
		sondeos = []*dm.SondeoHistorial{}
	}
	return &HistorialReply{Sondeos: sondeos, Total: len(sondeos)}, nil
}

// Demo 返回指定类别的演示数据集
func (s *SondeoService) Demo(tipo dm.Categoria, pregunta string) *DemoReply {
	return &DemoReply{
		DatosAnalisis: s.uc.Demo(tipo, pregunta),
		EsDemo:        true,
	}
}

// Tendencias 返回最新趋势快照
func (s *SondeoService) Tendencias(ctx context.Context) (any, error) {
	return s.uc.UltimasTendencias(ctx)
}
