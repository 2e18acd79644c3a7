package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iWorld-y/sondeos/pkg/analysis"
	dm "github.com/iWorld-y/sondeos/pkg/model"
)

func contextoDePrueba() *dm.ContextoAgregado {
	return &dm.ContextoAgregado{
		Pregunta:     "agua potable",
		TipoContexto: "tendencias",
		Categorias:   []dm.Categoria{dm.CategoriaTendencias},
	}
}

func analizar(t *testing.T, handler http.HandlerFunc, token string) (*dm.SondeoResult, error) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cliente := NewClient(srv.URL, 5)
	return cliente.Analizar(context.Background(), &analysis.Request{
		Contexto: contextoDePrueba(),
		Pregunta: "agua potable",
		Token:    token,
	})
}

func TestAnalizarPrecedenciaAnidada(t *testing.T) {
	// resultado.respuesta 优先于顶层 respuesta
	body := `{"resultado": {"respuesta": "A", "datos_analisis": {"x": [{"v": 1}]}}, "respuesta": "B"}`
	resultado, err := analizar(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}, "")
	if err != nil {
		t.Fatalf("Analizar() error = %v", err)
	}
	if resultado.LLMResponse != "A" {
		t.Errorf("LLMResponse = %q, want A", resultado.LLMResponse)
	}
	if resultado.EsDemo {
		t.Errorf("EsDemo = true con datos_analisis presentes")
	}
	if _, ok := resultado.DatosAnalisis["x"]; !ok {
		t.Errorf("DatosAnalisis no conserva la clave x")
	}
}

func TestAnalizarRespuestaPlana(t *testing.T) {
	body := `{"respuesta": "plana", "fuentes": ["f1"], "datos_analisis": {"y": []}}`
	resultado, err := analizar(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}, "")
	if err != nil {
		t.Fatalf("Analizar() error = %v", err)
	}
	if resultado.LLMResponse != "plana" {
		t.Errorf("LLMResponse = %q, want plana", resultado.LLMResponse)
	}
	if resultado.LLMSources == nil {
		t.Errorf("LLMSources = nil, want fuentes")
	}
}

func TestAnalizarErrorTextoPlano(t *testing.T) {
	resultado, err := analizar(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}, "")
	if resultado != nil {
		t.Errorf("resultado = %v, want nil", resultado)
	}
	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("err = %v, want *gateway.Error", err)
	}
	if gerr.Mensaje != "Internal Server Error" {
		t.Errorf("Mensaje = %q, want texto crudo", gerr.Mensaje)
	}
	if gerr.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", gerr.Status)
	}
}

func TestAnalizarErrorEstructurado(t *testing.T) {
	_, err := analizar(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "créditos insuficientes"}`))
	}, "")
	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("err = %v, want *gateway.Error", err)
	}
	if gerr.Mensaje != "créditos insuficientes" {
		t.Errorf("Mensaje = %q, want mensaje estructurado", gerr.Mensaje)
	}
}

func TestAnalizarCuerpoNoParseable(t *testing.T) {
	// 2xx 但响应体损坏：失败，绝不替换成演示数据
	resultado, err := analizar(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>esto no es JSON</html>"))
	}, "")
	if err == nil {
		t.Fatalf("Analizar() error = nil, want error de parseo")
	}
	if resultado != nil {
		t.Errorf("resultado = %v, want nil", resultado)
	}
}

func TestAnalizarSinDatosUsaDemo(t *testing.T) {
	body := `{"respuesta": "solo texto"}`
	resultado, err := analizar(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}, "")
	if err != nil {
		t.Fatalf("Analizar() error = %v", err)
	}
	if !resultado.EsDemo {
		t.Errorf("EsDemo = false, want true con datos_analisis ausente")
	}
	// 首个选中类别是 tendencias，回退数据集应带其固定键
	if _, ok := resultado.DatosAnalisis["temas_relevantes"]; !ok {
		t.Errorf("el fallback no usa el dataset del primer tipo de contexto")
	}
}

func TestAnalizarDatosVaciosEsRespuestaReal(t *testing.T) {
	// 显式返回的空对象是真实回答，不得替换成演示数据
	body := `{"respuesta": "sin datos graficables", "datos_analisis": {}}`
	resultado, err := analizar(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}, "")
	if err != nil {
		t.Fatalf("Analizar() error = %v", err)
	}
	if resultado.EsDemo {
		t.Errorf("EsDemo = true, want false con datos_analisis vacío pero presente")
	}
	if resultado.DatosAnalisis == nil || len(resultado.DatosAnalisis) != 0 {
		t.Errorf("DatosAnalisis = %v, want mapa vacío no nil", resultado.DatosAnalisis)
	}
}

func TestAnalizarRespuestaAusente(t *testing.T) {
	body := `{"resultado": {"datos_analisis": {"x": []}}}`
	resultado, err := analizar(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}, "")
	if err != nil {
		t.Fatalf("Analizar() error = %v", err)
	}
	if resultado.LLMResponse != "No se obtuvo respuesta del servicio." {
		t.Errorf("LLMResponse = %q, want mensaje por defecto", resultado.LLMResponse)
	}
}

func TestAnalizarCabeceraBearer(t *testing.T) {
	var auth string
	_, err := analizar(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{"respuesta": "ok", "datos_analisis": {"x": []}}`))
	}, "token-123")
	if err != nil {
		t.Fatalf("Analizar() error = %v", err)
	}
	if auth != "Bearer token-123" {
		t.Errorf("Authorization = %q, want Bearer token-123", auth)
	}
}

func TestAnalizarSinToken(t *testing.T) {
	var auth string
	_, err := analizar(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{"respuesta": "ok", "datos_analisis": {"x": []}}`))
	}, "")
	if err != nil {
		t.Fatalf("Analizar() error = %v", err)
	}
	if auth != "" {
		t.Errorf("Authorization = %q, want vacío", auth)
	}
}
