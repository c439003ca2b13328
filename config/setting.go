package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type serverConfig struct {
	Port        int    `koanf:"port" validate:"required"`
	Concurrency int    `koanf:"concurrency"`
	BodyLimit   int    `koanf:"body_limit" validate:"required"`
	AppName     string `koanf:"app_name" validate:"required"`
}

type logLevel string

const (
	Debug logLevel = "debug"
	Info  logLevel = "info"
	Warn  logLevel = "warn"
	Error logLevel = "error"
	Fatal logLevel = "fatal"
	Panic logLevel = "panic"
)

type Module string

const (
	ModuleMilvus     Module = "milvus"
	ModuleIngest     Module = "ingest"
	ModuleDatabase   Module = "database"
	ModuleOpenRouter Module = "openrouter"
	ModuleS3         Module = "s3"
	ModuleServer     Module = "server"
	ModuleSetting    Module = "setting"
	ModuleUpload     Module = "upload"
	ModuleQuery      Module = "query"
	ModuleDocument   Module = "document"
	ModuleHistory    Module = "history"
	ModuleRetriever  Module = "retriever"
)

type databaseConfig struct {
	Host         string `koanf:"host" validate:"required"`
	Port         int    `koanf:"port" validate:"required"`
	User         string `koanf:"user" validate:"required"`
	Password     string `koanf:"password"`
	Name         string `koanf:"name" validate:"required"`
	MaxIdleConns int    `koanf:"max_idle_conns" validate:"required"`
	MaxOpenConns int    `koanf:"max_open_conns" validate:"required"`
	MaxLifetime  int    `koanf:"max_lifetime" validate:"required"`
}

type openRouterConfig struct {
	Key            string `koanf:"key" validate:"required"`
	BaseURL        string `koanf:"base_url" validate:"required"`
	HTTPReferer    string `koanf:"http_referer"`
	XTitle         string `koanf:"x_title"`
	EmbeddingModel string `koanf:"embedding_model" validate:"required"`
	ChatModel      string `koanf:"chat_model" validate:"required"`
}

type corsConfig struct {
	AllowOrigins []string `koanf:"allow_origins"`
	AllowMethods []string `koanf:"allow_methods"`
	AllowHeaders []string `koanf:"allow_headers"`
}

type milvusConfig struct {
	Address    string `koanf:"address" validate:"required"`
	Collection string `koanf:"collection" validate:"required"`
	MetricType string `koanf:"metric_type"`
}

type s3Config struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Region    string `koanf:"region"`
	Bucket    string `koanf:"bucket"`
}

type ingestConfig struct {
	ChunkTokens   int    `koanf:"chunk_tokens" validate:"required"`
	OverlapTokens int    `koanf:"overlap_tokens"`
	EmbedBatch    int    `koanf:"embed_batch" validate:"required"`
	Encoding      string `koanf:"encoding" validate:"required"`
}

type retrieverConfig struct {
	TopK int `koanf:"top_k" validate:"required"`
}

type config struct {
	Server     serverConfig     `koanf:"server"`
	Database   databaseConfig   `koanf:"database"`
	OpenRouter openRouterConfig `koanf:"openrouter"`
	LogLevel   logLevel         `koanf:"log_level"`
	Dns        string           `koanf:"dns"`
	S3         s3Config         `koanf:"s3"`
	Cors       corsConfig       `koanf:"cors"`
	Milvus     milvusConfig     `koanf:"milvus"`
	Ingest     ingestConfig     `koanf:"ingest"`
	Retriever  retrieverConfig  `koanf:"retriever"`
}

func buildMySQLDSN(cfg databaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
	)
}

var defaultConfig = config{
	Server: serverConfig{
		Port:      8000,
		BodyLimit: 200 * 1024 * 1024,
		AppName:   "docqa",
	},
	Database: databaseConfig{
		Host:         "127.0.0.1",
		Port:         3306,
		User:         "root",
		Password:     "",
		Name:         "docqa",
		MaxIdleConns: 4,
		MaxOpenConns: 16,
		MaxLifetime:  30,
	},
	OpenRouter: openRouterConfig{
		Key:            "",
		BaseURL:        "https://openrouter.ai/api/v1",
		EmbeddingModel: "openai/text-embedding-3-large",
		ChatModel:      "openai/gpt-4o",
	},
	LogLevel: Info,
	S3: s3Config{
		Endpoint:  "http://localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Region:    "us-east-1",
		Bucket:    "",
	},
	Milvus: milvusConfig{
		Address:    "localhost:19530",
		Collection: "doc_chunks",
		MetricType: "COSINE",
	},
	Ingest: ingestConfig{
		ChunkTokens:   2000,
		OverlapTokens: 200,
		EmbedBatch:    64,
		Encoding:      "cl100k_base",
	},
	Retriever: retrieverConfig{
		TopK: 6,
	},
}

var (
	Cfg  = defaultConfig
	once sync.Once
)

func init() {
	path := "config.yaml"

	once.Do(func() {
		k := koanf.New(".")

		validate := validator.New()
		// defaults
		Cfg = defaultConfig

		// file
		if e := k.Load(file.Provider(path), yaml.Parser()); e != nil && !os.IsNotExist(e) {
			return
		}

		// env APP_SERVER_PORT
		if e := k.Load(env.Provider("APP_", ".", func(s string) string {
			return strings.ToLower(strings.TrimPrefix(s, "APP_"))
		}), nil); e != nil {
			return
		}

		// bind
		if e := k.Unmarshal("", &Cfg); e != nil {
			log.Errorf("failed to unmarshal config: %v", e)
		}

		if Cfg.Dns == "" {
			Cfg.Dns = buildMySQLDSN(Cfg.Database)
		}

		// validate config
		if err := validate.Struct(Cfg); err != nil {
			if errs, ok := err.(validator.ValidationErrors); ok {
				var sb strings.Builder
				sb.WriteString(fmt.Sprintf("%v Config validation failed:\n", ModuleSetting))

				for _, e := range errs {
					sb.WriteString(
						fmt.Sprintf("  - %s: failed '%s' (value: %v)\n", e.Field(), e.Tag(), e.Value()),
					)
				}

				log.Error(sb.String())
			} else {
				log.Errorf("config validation failed: %v", err)
			}
		}
	})

}
