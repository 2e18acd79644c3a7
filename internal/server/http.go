package server

import (
	nethttp "net/http"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/sondeos/internal/conf"
	"github.com/iWorld-y/sondeos/internal/service"
	dm "github.com/iWorld-y/sondeos/pkg/model"
)

func NewHTTPServer(c *conf.Server, s *service.SondeoService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Http.Addr != "" {
		opts = append(opts, http.Address(c.Http.Addr))
	}
	if c.Http.Timeout != "" {
		if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)

	r := srv.Route("/api/v1")

	r.POST("/sondeos", func(ctx http.Context) error {
		var req service.SondearReq
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		token := bearerToken(ctx.Request())
		resultado, err := s.Sondear(ctx, &req, token)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, resultado)
	})

	r.GET("/sondeos", func(ctx http.Context) error {
		usuario := ctx.Query().Get("usuario")
		reply, err := s.Historial(ctx, usuario)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, reply)
	})

	r.GET("/sondeos/demo", func(ctx http.Context) error {
		tipo := dm.Categoria(ctx.Query().Get("tipo"))
		pregunta := ctx.Query().Get("pregunta")
		return ctx.Result(nethttp.StatusOK, s.Demo(tipo, pregunta))
	})

	r.GET("/fuentes/tendencias", func(ctx http.Context) error {
		tendencias, err := s.Tendencias(ctx)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, tendencias)
	})

	srv.HandleFunc("/healthz", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusOK)
		w.Write([]byte("ok"))
	})

	return srv
}

// bearerToken 取出可选的 Bearer 令牌；缺失时返回空串，由网关决定是否放行
func bearerToken(r *nethttp.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
