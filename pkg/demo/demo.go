// Package demo 生成确定性的演示数据集。
// 在尚未发起网关调用、或网关响应缺失分析数据时，前端仍需要一份
// 可渲染的 datos_analisis；这里按类别返回固定常量，只有叙述文本
// 会插值问题字符串，因此同一输入永远得到同一输出。
package demo

import (
	"fmt"

	"github.com/iWorld-y/sondeos/pkg/model"
)

// ChartRow 单行图表数据，字段形状由 dataKey 决定
type ChartRow = map[string]any

// Generar 按上下文类别生成演示数据集。
// 返回值包含若干 dataKey -> []ChartRow，以及与这些 dataKey 同键的
// conclusiones / metodologia 叙述映射。未知类别退回 datos_genericos。
func Generar(tipo model.Categoria, pregunta string) map[string]any {
	switch tipo {
	case model.CategoriaTendencias:
		return datosTendencias(pregunta)
	case model.CategoriaNoticias:
		return datosNoticias(pregunta)
	case model.CategoriaCodex:
		return datosCodex(pregunta)
	case model.CategoriaMonitoreo:
		return datosMonitoreo(pregunta)
	default:
		return datosGenericos(pregunta)
	}
}

func datosTendencias(pregunta string) map[string]any {
	return map[string]any{
		"temas_relevantes": []ChartRow{
			{"tema": "Política nacional", "valor": 85},
			{"tema": "Economía", "valor": 72},
			{"tema": "Seguridad", "valor": 64},
			{"tema": "Medio ambiente", "valor": 51},
			{"tema": "Educación", "valor": 43},
		},
		"distribucion_categorias": []ChartRow{
			{"categoria": "Política", "valor": 35},
			{"categoria": "Economía", "valor": 25},
			{"categoria": "Sociedad", "valor": 20},
			{"categoria": "Tecnología", "valor": 12},
			{"categoria": "Otros", "valor": 8},
		},
		"mapa_menciones": []ChartRow{
			{"region": "Capital", "menciones": 420},
			{"region": "Norte", "menciones": 180},
			{"region": "Centro", "menciones": 150},
			{"region": "Sur", "menciones": 95},
		},
		"subtemas_relacionados": []ChartRow{
			{"subtema": "Presupuesto público", "relacion": 78},
			{"subtema": "Empleo", "relacion": 65},
			{"subtema": "Inversión extranjera", "relacion": 47},
			{"subtema": "Infraestructura", "relacion": 39},
		},
		"evolucion_sentimiento": []ChartRow{
			{"fecha": "Lunes", "positivo": 45, "negativo": 30, "neutral": 25},
			{"fecha": "Martes", "positivo": 42, "negativo": 35, "neutral": 23},
			{"fecha": "Miércoles", "positivo": 50, "negativo": 28, "neutral": 22},
			{"fecha": "Jueves", "positivo": 47, "negativo": 31, "neutral": 22},
			{"fecha": "Viernes", "positivo": 52, "negativo": 26, "neutral": 22},
		},
		"cronologia_eventos": []ChartRow{
			{"fecha": "Día 1", "evento": "Primer pico de menciones", "impacto": 70},
			{"fecha": "Día 3", "evento": "Declaraciones oficiales", "impacto": 85},
			{"fecha": "Día 5", "evento": "Cobertura en medios nacionales", "impacto": 92},
		},
		"conclusiones": map[string]string{
			"temas_relevantes":        fmt.Sprintf("Los temas más asociados a \"%s\" se concentran en política y economía.", pregunta),
			"distribucion_categorias": fmt.Sprintf("La conversación sobre \"%s\" se distribuye principalmente en categorías políticas.", pregunta),
			"mapa_menciones":          fmt.Sprintf("Las menciones de \"%s\" se concentran en la región capital.", pregunta),
			"subtemas_relacionados":   fmt.Sprintf("Los subtemas vinculados a \"%s\" giran en torno al presupuesto y el empleo.", pregunta),
			"evolucion_sentimiento":   fmt.Sprintf("El sentimiento hacia \"%s\" se mantiene mayoritariamente positivo durante la semana.", pregunta),
			"cronologia_eventos":      fmt.Sprintf("La cronología de \"%s\" muestra un pico tras las declaraciones oficiales.", pregunta),
		},
		"metodologia": map[string]string{
			"temas_relevantes":        "Frecuencia ponderada de temas en tendencias recientes.",
			"distribucion_categorias": "Clasificación automática de menciones por categoría temática.",
			"mapa_menciones":          "Geolocalización aproximada de menciones públicas.",
			"subtemas_relacionados":   "Co-ocurrencia de términos en el corpus de tendencias.",
			"evolucion_sentimiento":   "Clasificación de polaridad diaria sobre menciones muestreadas.",
			"cronologia_eventos":      "Detección de picos de volumen sobre la serie temporal de menciones.",
		},
	}
}

func datosNoticias(pregunta string) map[string]any {
	return map[string]any{
		"noticias_relevantes": []ChartRow{
			{"titulo": "Cobertura principal", "relevancia": 90},
			{"titulo": "Análisis editorial", "relevancia": 74},
			{"titulo": "Reportaje regional", "relevancia": 61},
			{"titulo": "Nota de seguimiento", "relevancia": 48},
		},
		"fuentes_principales": []ChartRow{
			{"fuente": "Prensa nacional", "articulos": 14},
			{"fuente": "Medios digitales", "articulos": 11},
			{"fuente": "Agencias", "articulos": 7},
			{"fuente": "Prensa regional", "articulos": 5},
		},
		"cobertura_temporal": []ChartRow{
			{"fecha": "Semana 1", "articulos": 9},
			{"fecha": "Semana 2", "articulos": 15},
			{"fecha": "Semana 3", "articulos": 12},
			{"fecha": "Semana 4", "articulos": 6},
		},
		"tono_cobertura": []ChartRow{
			{"tono": "Informativo", "valor": 55},
			{"tono": "Crítico", "valor": 25},
			{"tono": "Favorable", "valor": 20},
		},
		"conclusiones": map[string]string{
			"noticias_relevantes": fmt.Sprintf("La cobertura periodística de \"%s\" está liderada por prensa nacional.", pregunta),
			"fuentes_principales": fmt.Sprintf("Las fuentes que más publican sobre \"%s\" son medios nacionales y digitales.", pregunta),
			"cobertura_temporal":  fmt.Sprintf("El interés mediático en \"%s\" alcanzó su máximo en la segunda semana.", pregunta),
			"tono_cobertura":      fmt.Sprintf("El tono predominante de la cobertura sobre \"%s\" es informativo.", pregunta),
		},
		"metodologia": map[string]string{
			"noticias_relevantes": "Puntaje de relevancia por coincidencia de palabras clave en titulares.",
			"fuentes_principales": "Conteo de artículos agrupados por medio de origen.",
			"cobertura_temporal":  "Agregación semanal de artículos publicados.",
			"tono_cobertura":      "Clasificación del tono sobre una muestra de artículos.",
		},
	}
}

func datosCodex(pregunta string) map[string]any {
	return map[string]any{
		"documentos_relevantes": []ChartRow{
			{"documento": "Informe principal", "relevancia": 88},
			{"documento": "Minuta de reunión", "relevancia": 69},
			{"documento": "Notas de campo", "relevancia": 54},
			{"documento": "Borrador de propuesta", "relevancia": 41},
		},
		"tags_frecuentes": []ChartRow{
			{"tag": "estrategia", "conteo": 12},
			{"tag": "presupuesto", "conteo": 9},
			{"tag": "territorio", "conteo": 7},
			{"tag": "comunicación", "conteo": 5},
		},
		"actividad_documental": []ChartRow{
			{"mes": "Enero", "documentos": 4},
			{"mes": "Febrero", "documentos": 7},
			{"mes": "Marzo", "documentos": 5},
			{"mes": "Abril", "documentos": 8},
		},
		"conclusiones": map[string]string{
			"documentos_relevantes": fmt.Sprintf("Los documentos del Codex más afines a \"%s\" son informes y minutas.", pregunta),
			"tags_frecuentes":       fmt.Sprintf("Las etiquetas dominantes en documentos sobre \"%s\" son estrategia y presupuesto.", pregunta),
			"actividad_documental":  fmt.Sprintf("La producción documental relacionada con \"%s\" creció en los últimos meses.", pregunta),
		},
		"metodologia": map[string]string{
			"documentos_relevantes": "Coincidencia de palabras clave sobre título y contenido de documentos.",
			"tags_frecuentes":       "Conteo de etiquetas en los documentos filtrados.",
			"actividad_documental":  "Agregación mensual de documentos creados.",
		},
	}
}

func datosMonitoreo(pregunta string) map[string]any {
	return map[string]any{
		"menciones_por_hora": []ChartRow{
			{"hora": "08:00", "menciones": 45},
			{"hora": "12:00", "menciones": 120},
			{"hora": "16:00", "menciones": 98},
			{"hora": "20:00", "menciones": 160},
		},
		"hashtags_principales": []ChartRow{
			{"hashtag": "#tendencia", "usos": 340},
			{"hashtag": "#actualidad", "usos": 215},
			{"hashtag": "#debate", "usos": 150},
			{"hashtag": "#opinion", "usos": 90},
		},
		"sentimiento_general": []ChartRow{
			{"sentimiento": "Positivo", "valor": 38},
			{"sentimiento": "Negativo", "valor": 34},
			{"sentimiento": "Neutral", "valor": 28},
		},
		"cuentas_influyentes": []ChartRow{
			{"cuenta": "@medio_nacional", "alcance": 12000},
			{"cuenta": "@analista_pol", "alcance": 8600},
			{"cuenta": "@ciudadania_activa", "alcance": 5400},
		},
		"conclusiones": map[string]string{
			"menciones_por_hora":   fmt.Sprintf("Las menciones de \"%s\" en redes se concentran en horario nocturno.", pregunta),
			"hashtags_principales": fmt.Sprintf("Los hashtags asociados a \"%s\" son mayormente de actualidad.", pregunta),
			"sentimiento_general":  fmt.Sprintf("El sentimiento en redes hacia \"%s\" está dividido, con leve ventaja positiva.", pregunta),
			"cuentas_influyentes":  fmt.Sprintf("Las cuentas con mayor alcance sobre \"%s\" son medios y analistas.", pregunta),
		},
		"metodologia": map[string]string{
			"menciones_por_hora":   "Agregación horaria de menciones capturadas en el monitoreo.",
			"hashtags_principales": "Conteo de hashtags en las capturas seleccionadas.",
			"sentimiento_general":  "Clasificación de polaridad sobre la muestra de publicaciones.",
			"cuentas_influyentes":  "Ordenamiento por alcance estimado de las cuentas detectadas.",
		},
	}
}

func datosGenericos(pregunta string) map[string]any {
	return map[string]any{
		"datos_genericos": []ChartRow{
			{"etiqueta": "Serie A", "valor": 40},
			{"etiqueta": "Serie B", "valor": 30},
			{"etiqueta": "Serie C", "valor": 20},
			{"etiqueta": "Serie D", "valor": 10},
		},
		"conclusiones": map[string]string{
			"datos_genericos": fmt.Sprintf("Datos de demostración para \"%s\" sin categoría de contexto reconocida.", pregunta),
		},
		"metodologia": map[string]string{
			"datos_genericos": "Conjunto fijo de demostración, sin procesamiento de fuentes.",
		},
	}
}
