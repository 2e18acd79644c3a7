package rss

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Diario de Prueba</title>
    <item>
      <title>Crisis del agua potable en la capital</title>
      <link>http://example.com/nota-1</link>
      <description>La red de distribución de agua potable presenta fallas estructurales que afectan a miles de hogares en la zona norte de la ciudad.</description>
      <pubDate>Mon, 10 Aug 2026 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Resultados del torneo local</title>
      <link>http://example.com/nota-2</link>
      <description>El equipo de la ciudad ganó el torneo regional tras una final disputada frente al club visitante en el estadio municipal.</description>
      <pubDate>Tue, 11 Aug 2026 12:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func TestGetLatestNews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feedXML))
	}))
	t.Cleanup(srv.Close)

	cliente := NewClient([]string{srv.URL}, 5)
	noticias, err := cliente.GetLatestNews(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetLatestNews() error = %v", err)
	}
	if len(noticias) != 2 {
		t.Fatalf("noticias = %d, want 2", len(noticias))
	}
	if noticias[0].Title != "Crisis del agua potable en la capital" {
		t.Errorf("Title = %q", noticias[0].Title)
	}
	if noticias[0].Source != "Diario de Prueba" {
		t.Errorf("Source = %q", noticias[0].Source)
	}
	if noticias[0].Date != "2026-08-10" {
		t.Errorf("Date = %q, want fecha normalizada", noticias[0].Date)
	}
	if !strings.Contains(noticias[0].Excerpt, "agua potable") {
		t.Errorf("Excerpt = %q", noticias[0].Excerpt)
	}
}

func TestGetLatestNewsRespetaLimite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedXML))
	}))
	t.Cleanup(srv.Close)

	cliente := NewClient([]string{srv.URL}, 5)
	noticias, err := cliente.GetLatestNews(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetLatestNews() error = %v", err)
	}
	if len(noticias) != 1 {
		t.Errorf("noticias = %d, want 1", len(noticias))
	}
}

func TestGetLatestNewsFuenteCaida(t *testing.T) {
	// 单个订阅源不可用时跳过，不视为错误
	caido := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(caido.Close)
	sano := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedXML))
	}))
	t.Cleanup(sano.Close)

	cliente := NewClient([]string{caido.URL, sano.URL}, 5)
	noticias, err := cliente.GetLatestNews(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetLatestNews() error = %v", err)
	}
	if len(noticias) != 2 {
		t.Errorf("noticias = %d, want 2 del origen sano", len(noticias))
	}
}
