package data

import (
	"database/sql"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"

	"github.com/iWorld-y/sondeos/internal/conf"
)

type Data struct {
	db *sql.DB
}

func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	db, err := sql.Open(c.Database.Driver, c.Database.Source)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, nil, err
	}

	// Init schema
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sondeo_historial (
			id TEXT PRIMARY KEY,
			usuario TEXT NOT NULL,
			pregunta TEXT NOT NULL,
			respuesta_llm TEXT,
			datos_analisis JSONB,
			contextos_utilizados JSONB,
			modelo_ia TEXT,
			tokens_utilizados INT DEFAULT 0,
			creditos_utilizados INT DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS noticias (
			id SERIAL PRIMARY KEY,
			titulo TEXT NOT NULL,
			extracto TEXT,
			fuente TEXT,
			url TEXT,
			fecha TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS codex_items (
			id SERIAL PRIMARY KEY,
			usuario TEXT NOT NULL,
			titulo TEXT NOT NULL,
			contenido TEXT,
			tags TEXT[],
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS tendencias (
			id SERIAL PRIMARY KEY,
			top_keywords JSONB,
			nube_palabras JSONB,
			acerca_de JSONB,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS monitoreos (
			id TEXT PRIMARY KEY,
			titulo_generado TEXT,
			consulta_limpia TEXT,
			consulta_original TEXT NOT NULL,
			herramienta TEXT NOT NULL,
			categoria TEXT,
			tweet_count INT DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return nil, nil, fmt.Errorf("failed to init schema: %w", err)
	}

	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		db.Close()
	}
	return &Data{db: db}, cleanup, nil
}
