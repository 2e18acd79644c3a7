package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config 探询核心配置结构体
type Config struct {
	Analysis    AnalysisConfig    `yaml:"analysis"`
	Gateway     GatewayConfig     `yaml:"gateway"`
	LLM         LLMConfig         `yaml:"llm"`
	News        NewsConfig        `yaml:"news"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	DB          DBConfig          `yaml:"db"`
}

// AnalysisConfig 分析服务提供方配置
type AnalysisConfig struct {
	// Provider 可选 "gateway"（外部分析网关）或 "directo"（直连 LLM）
	Provider string `yaml:"provider"`
}

// GatewayConfig 外部分析网关配置
type GatewayConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"` // 秒
}

// LLMConfig 直连 LLM 相关配置
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// NewsConfig 新闻来源配置
type NewsConfig struct {
	// Provider 可选 "postgres"（数据库表）或 "rss"（订阅源拉取）
	Provider string   `yaml:"provider"`
	Feeds    []string `yaml:"feeds"`
	Timeout  int      `yaml:"timeout"` // 秒
}

// DBConfig 数据库相关配置
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
