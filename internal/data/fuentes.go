package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/lib/pq"

	"github.com/iWorld-y/sondeos/pkg/sources"
)

// FuentesRepo 基于 Postgres 的上下文来源，
// 同时实现新闻、文档、趋势、监测四个来源接口
type FuentesRepo struct {
	data *Data
	log  *log.Helper
}

// NewFuentesRepo 创建数据库来源仓库
func NewFuentesRepo(data *Data, logger log.Logger) *FuentesRepo {
	return &FuentesRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

var (
	_ sources.NewsSource       = (*FuentesRepo)(nil)
	_ sources.CodexSource      = (*FuentesRepo)(nil)
	_ sources.TrendsSource     = (*FuentesRepo)(nil)
	_ sources.MonitoringSource = (*FuentesRepo)(nil)
)

func (r *FuentesRepo) GetLatestNews(ctx context.Context, limit int) ([]sources.Noticia, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.data.db.QueryContext(ctx, `
		SELECT titulo, COALESCE(extracto, ''), COALESCE(fuente, ''), COALESCE(url, ''), COALESCE(fecha, '')
		FROM noticias
		ORDER BY created_at DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var noticias []sources.Noticia
	for rows.Next() {
		var n sources.Noticia
		if err := rows.Scan(&n.Title, &n.Excerpt, &n.Source, &n.URL, &n.Date); err != nil {
			return nil, err
		}
		noticias = append(noticias, n)
	}
	return noticias, rows.Err()
}

func (r *FuentesRepo) GetCodexItemsByUser(ctx context.Context, userID string) ([]sources.Documento, error) {
	rows, err := r.data.db.QueryContext(ctx, `
		SELECT titulo, COALESCE(contenido, ''), tags, created_at
		FROM codex_items
		WHERE usuario = $1
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documentos []sources.Documento
	for rows.Next() {
		var d sources.Documento
		var tags pq.StringArray
		var createdAt time.Time
		if err := rows.Scan(&d.Title, &d.Content, &tags, &createdAt); err != nil {
			return nil, err
		}
		d.Tags = tags
		d.CreatedAt = createdAt.Format(time.DateOnly)
		documentos = append(documentos, d)
	}
	return documentos, rows.Err()
}

func (r *FuentesRepo) GetLatestTrends(ctx context.Context) (*sources.Tendencias, error) {
	var topKeywords, nubePalabras, acercaDe []byte
	err := r.data.db.QueryRowContext(ctx, `
		SELECT COALESCE(top_keywords, '[]'), COALESCE(nube_palabras, '[]'), COALESCE(acerca_de, '[]')
		FROM tendencias
		ORDER BY created_at DESC
		LIMIT 1`,
	).Scan(&topKeywords, &nubePalabras, &acercaDe)
	if err == sql.ErrNoRows {
		return &sources.Tendencias{}, nil
	}
	if err != nil {
		return nil, err
	}

	var tendencias sources.Tendencias
	if err := json.Unmarshal(topKeywords, &tendencias.TopKeywords); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(nubePalabras, &tendencias.WordCloudData); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(acercaDe, &tendencias.About); err != nil {
		return nil, err
	}
	return &tendencias, nil
}

func (r *FuentesRepo) GetRecentScrapeByID(ctx context.Context, id string) (*sources.Monitoreo, error) {
	var m sources.Monitoreo
	var tituloGenerado, consultaLimpia, categoria sql.NullString
	var createdAt time.Time
	err := r.data.db.QueryRowContext(ctx, `
		SELECT id, titulo_generado, consulta_limpia, consulta_original,
		       herramienta, categoria, tweet_count, created_at
		FROM monitoreos
		WHERE id = $1`,
		id,
	).Scan(&m.ID, &tituloGenerado, &consultaLimpia, &m.QueryOriginal,
		&m.Herramienta, &categoria, &m.TweetCount, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	m.GeneratedTitle = tituloGenerado.String
	m.QueryClean = consultaLimpia.String
	m.Categoria = categoria.String
	m.CreatedAt = createdAt.Format(time.RFC3339)
	return &m, nil
}
