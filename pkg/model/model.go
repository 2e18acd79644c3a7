package model

// Categoria 上下文类别
type Categoria string

const (
	CategoriaTendencias Categoria = "tendencias"
	CategoriaNoticias   Categoria = "noticias"
	CategoriaCodex      Categoria = "codex"
	CategoriaMonitoreo  Categoria = "monitoreo"
)

// Valida 判断类别是否合法
func (c Categoria) Valida() bool {
	switch c {
	case CategoriaTendencias, CategoriaNoticias, CategoriaCodex, CategoriaMonitoreo:
		return true
	}
	return false
}

// Consulta 一次探询的原始输入
type Consulta struct {
	Pregunta    string                 `json:"pregunta"`
	Categorias  []Categoria            `json:"categorias"`
	Selecciones map[Categoria][]string `json:"selecciones,omitempty"` // 每个类别下用户显式勾选的条目 ID
	// TendenciasSeleccionadas 用户手动勾选的趋势条目；非空时原样进入上下文，
	// 不再拉取最新趋势，也不做相关性过滤
	TendenciasSeleccionadas []TendenciaSeleccionada `json:"tendencias_seleccionadas,omitempty"`
	Usuario                 string                  `json:"usuario,omitempty"`
}

// PalabraClave 热门关键词
type PalabraClave struct {
	Palabra string `json:"keyword"`
	Conteo  int    `json:"count"`
}

// TendenciaSeleccionada 用户显式勾选的趋势条目，原样进入上下文
type TendenciaSeleccionada struct {
	Nombre    string `json:"nombre"`
	Categoria string `json:"categoria,omitempty"`
	Menciones int    `json:"menciones,omitempty"`
}

// TendenciasContexto 趋势类别的上下文段
type TendenciasContexto struct {
	PalabrasClave []PalabraClave          `json:"palabras_clave,omitempty"`
	NubePalabras  []map[string]any        `json:"nube_palabras,omitempty"`
	AcercaDe      []map[string]any        `json:"acerca_de,omitempty"`
	Seleccionadas []TendenciaSeleccionada `json:"seleccionadas,omitempty"`
}

// NoticiaContexto 新闻类别的单条上下文记录
type NoticiaContexto struct {
	Titulo    string `json:"titulo"`
	Contenido string `json:"contenido"`
	Fuente    string `json:"fuente"`
	URL       string `json:"url"`
	Fecha     string `json:"fecha"`
}

// DocumentoContexto 文档库类别的单条上下文记录
type DocumentoContexto struct {
	Titulo    string   `json:"titulo"`
	Contenido string   `json:"contenido"`
	Tags      []string `json:"tags,omitempty"`
	Fecha     string   `json:"fecha"`
}

// MonitoreoContexto 监测抓取类别的单条上下文记录
type MonitoreoContexto struct {
	ID          string `json:"id"`
	Titulo      string `json:"titulo"`
	Consulta    string `json:"consulta"`
	Herramienta string `json:"herramienta"`
	Categoria   string `json:"categoria,omitempty"`
	Fecha       string `json:"fecha"`
	TweetCount  int    `json:"tweet_count,omitempty"`
}

// ContextoAgregado 发送给分析网关的复合上下文。
// 某个类别抓取失败时对应字段保持 nil（键被省略）；
// 类别被显式请求但无匹配时保持非 nil 空切片。
type ContextoAgregado struct {
	Pregunta     string              `json:"pregunta"`
	TipoContexto string              `json:"tipo_contexto"`
	Categorias   []Categoria         `json:"categorias_seleccionadas"`
	Tendencias   *TendenciasContexto `json:"tendencias,omitempty"`
	Noticias     []NoticiaContexto   `json:"noticias,omitzero"`
	Documentos   []DocumentoContexto `json:"documentos,omitzero"`
	Monitoreos   []MonitoreoContexto `json:"monitoreos,omitzero"`
}

// Tiene 判断聚合结果中某个类别的键是否存在
func (c *ContextoAgregado) Tiene(cat Categoria) bool {
	switch cat {
	case CategoriaTendencias:
		return c.Tendencias != nil
	case CategoriaNoticias:
		return c.Noticias != nil
	case CategoriaCodex:
		return c.Documentos != nil
	case CategoriaMonitoreo:
		return c.Monitoreos != nil
	}
	return false
}

// SondeoResult 一次探询的最终结果
type SondeoResult struct {
	Contexto      *ContextoAgregado `json:"contexto"`
	LLMResponse   string            `json:"respuesta_llm"`
	LLMSources    any               `json:"fuentes_llm,omitempty"`
	DatosAnalisis map[string]any    `json:"datos_analisis"`
	// EsDemo 标记 datos_analisis 来自演示数据而非网关真实返回，
	// 日志与前端必须能区分两者
	EsDemo bool   `json:"modo_demo,omitempty"`
	Modelo string `json:"modelo_ia,omitempty"`
	Tokens int    `json:"tokens_utilizados,omitempty"`
}

// SondeoHistorial 已持久化的探询历史记录
type SondeoHistorial struct {
	ID                  string         `json:"id"`
	Usuario             string         `json:"usuario"`
	Pregunta            string         `json:"pregunta"`
	RespuestaLLM        string         `json:"respuesta_llm"`
	DatosAnalisis       map[string]any `json:"datos_analisis,omitempty"`
	ContextosUtilizados []Categoria    `json:"contextos_utilizados"`
	ModeloIA            string         `json:"modelo_ia,omitempty"`
	TokensUtilizados    int            `json:"tokens_utilizados,omitempty"`
	CreditosUtilizados  int            `json:"creditos_utilizados,omitempty"`
	CreatedAt           string         `json:"created_at"`
}
