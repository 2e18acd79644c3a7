package demo

import (
	"reflect"
	"strings"
	"testing"

	"github.com/iWorld-y/sondeos/pkg/model"
)

func TestGenerarDeterminista(t *testing.T) {
	una := Generar(model.CategoriaTendencias, "agua potable")
	dos := Generar(model.CategoriaTendencias, "agua potable")
	if !reflect.DeepEqual(una, dos) {
		t.Errorf("Generar no es determinista para la misma entrada")
	}
}

func TestGenerarClavesPorCategoria(t *testing.T) {
	casos := []struct {
		tipo   model.Categoria
		claves []string
	}{
		{model.CategoriaTendencias, []string{
			"temas_relevantes", "distribucion_categorias", "mapa_menciones",
			"subtemas_relacionados", "evolucion_sentimiento", "cronologia_eventos",
		}},
		{model.CategoriaNoticias, []string{
			"noticias_relevantes", "fuentes_principales", "cobertura_temporal", "tono_cobertura",
		}},
		{model.CategoriaCodex, []string{
			"documentos_relevantes", "tags_frecuentes", "actividad_documental",
		}},
		{model.CategoriaMonitoreo, []string{
			"menciones_por_hora", "hashtags_principales", "sentimiento_general", "cuentas_influyentes",
		}},
	}

	for _, caso := range casos {
		datos := Generar(caso.tipo, "transporte público")
		for _, clave := range caso.claves {
			filas, ok := datos[clave].([]ChartRow)
			if !ok {
				t.Errorf("[%s] falta la clave %q o no es []ChartRow", caso.tipo, clave)
				continue
			}
			if len(filas) == 0 {
				t.Errorf("[%s] clave %q sin filas", caso.tipo, clave)
			}
		}

		conclusiones, ok := datos["conclusiones"].(map[string]string)
		if !ok {
			t.Fatalf("[%s] falta conclusiones", caso.tipo)
		}
		metodologia, ok := datos["metodologia"].(map[string]string)
		if !ok {
			t.Fatalf("[%s] falta metodologia", caso.tipo)
		}
		for _, clave := range caso.claves {
			if _, ok := conclusiones[clave]; !ok {
				t.Errorf("[%s] conclusiones sin la clave %q", caso.tipo, clave)
			}
			if _, ok := metodologia[clave]; !ok {
				t.Errorf("[%s] metodologia sin la clave %q", caso.tipo, clave)
			}
		}
	}
}

func TestGenerarInterpolaPregunta(t *testing.T) {
	datos := Generar(model.CategoriaNoticias, "reforma fiscal")
	conclusiones := datos["conclusiones"].(map[string]string)
	encontrada := false
	for _, texto := range conclusiones {
		if strings.Contains(texto, "reforma fiscal") {
			encontrada = true
			break
		}
	}
	if !encontrada {
		t.Errorf("ninguna conclusión interpola la pregunta")
	}
}

func TestGenerarTipoDesconocido(t *testing.T) {
	datos := Generar(model.Categoria("desconocida"), "algo")
	filas, ok := datos["datos_genericos"].([]ChartRow)
	if !ok {
		t.Fatalf("falta datos_genericos para tipo desconocido")
	}
	if len(filas) != 4 {
		t.Errorf("datos_genericos tiene %d filas, want 4", len(filas))
	}
}
