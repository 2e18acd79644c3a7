package conf

type Bootstrap struct {
	Server *Server
	Data   *Data
	Sondeo *Sondeo
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Data struct {
	Database *Database
}

type Database struct {
	Driver string
	Source string
}

// Sondeo 探询核心的应用层配置，扫描后转换为 pkg/config.Config
type Sondeo struct {
	Analysis    *Analysis    `json:"analysis"`
	Gateway     *Gateway     `json:"gateway"`
	Llm         *LLM         `json:"llm"`
	News        *News        `json:"news"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
}

type Analysis struct {
	Provider string `json:"provider"`
}

type Gateway struct {
	BaseUrl string `json:"base_url"`
	Timeout int32  `json:"timeout"`
}

type LLM struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
}

type News struct {
	Provider string   `json:"provider"`
	Feeds    []string `json:"feeds"`
	Timeout  int32    `json:"timeout"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}
