package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/sondeos/internal/biz"
	dm "github.com/iWorld-y/sondeos/pkg/model"
)

type historialRepo struct {
	data *Data
	log  *log.Helper
}

// NewHistorialRepo 创建探询历史仓库
func NewHistorialRepo(data *Data, logger log.Logger) biz.HistorialRepo {
	return &historialRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *historialRepo) SaveSondeo(ctx context.Context, entry *dm.SondeoHistorial) error {
	datos, err := json.Marshal(entry.DatosAnalisis)
	if err != nil {
		return err
	}
	contextos, err := json.Marshal(entry.ContextosUtilizados)
	if err != nil {
		return err
	}

	_, err = r.data.db.ExecContext(ctx, `
		INSERT INTO sondeo_historial
			(id, usuario, pregunta, respuesta_llm, datos_analisis, contextos_utilizados,
			 modelo_ia, tokens_utilizados, creditos_utilizados, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.ID, entry.Usuario, entry.Pregunta, entry.RespuestaLLM,
		datos, contextos, entry.ModeloIA, entry.TokensUtilizados,
		entry.CreditosUtilizados, entry.CreatedAt,
	)
	return err
}

func (r *historialRepo) ListSondeosByUser(ctx context.Context, usuario string) ([]*dm.SondeoHistorial, error) {
	rows, err := r.data.db.QueryContext(ctx, `
		SELECT id, usuario, pregunta, respuesta_llm, datos_analisis, contextos_utilizados,
		       modelo_ia, tokens_utilizados, creditos_utilizados, created_at
		FROM sondeo_historial
		WHERE usuario = $1
		ORDER BY created_at DESC`,
		usuario,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var historial []*dm.SondeoHistorial
	for rows.Next() {
		var entry dm.SondeoHistorial
		var respuesta, modelo sql.NullString
		var datos, contextos []byte
		var createdAt time.Time

		if err := rows.Scan(&entry.ID, &entry.Usuario, &entry.Pregunta, &respuesta,
			&datos, &contextos, &modelo, &entry.TokensUtilizados,
			&entry.CreditosUtilizados, &createdAt); err != nil {
			return nil, err
		}

		entry.RespuestaLLM = respuesta.String
		entry.ModeloIA = modelo.String
		entry.CreatedAt = createdAt.Format(time.RFC3339)

		// 历史行对核心是不透明记录：JSON 解析失败只记日志，不丢整行
		if len(datos) > 0 {
			if err := json.Unmarshal(datos, &entry.DatosAnalisis); err != nil {
				r.log.Warnf("datos_analisis corrupto en historial [%s]: %v", entry.ID, err)
			}
		}
		if len(contextos) > 0 {
			if err := json.Unmarshal(contextos, &entry.ContextosUtilizados); err != nil {
				r.log.Warnf("contextos_utilizados corrupto en historial [%s]: %v", entry.ID, err)
			}
		}

		historial = append(historial, &entry)
	}
	return historial, rows.Err()
}
