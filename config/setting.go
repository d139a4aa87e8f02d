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
	Mode        string `koanf:"mode" validate:"required"`
	Concurrency int    `koanf:"concurrency"`
	BodyLimit   int    `koanf:"body_limit"`
	AppName     string `koanf:"app_name"`
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

// Module tags log entries and error payloads with the subsystem they came from.
type Module string

const (
	ModuleServer    Module = "server"
	ModuleSetting   Module = "setting"
	ModuleDatabase  Module = "database"
	ModuleMilvus    Module = "milvus"
	ModuleOpenAI    Module = "openai"
	ModuleS3        Module = "s3"
	ModuleUpload    Module = "upload"
	ModuleIngest    Module = "ingest"
	ModulePreview   Module = "preview"
	ModuleRetriever Module = "retriever"
)

type databaseConfig struct {
	Host         string `koanf:"host" validate:"required"`
	Port         int    `koanf:"port" validate:"required"`
	User         string `koanf:"user" validate:"required"`
	Password     string `koanf:"password"`
	Name         string `koanf:"name" validate:"required"`
	ReplicaHost  string `koanf:"replica_host"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxLifetime  int    `koanf:"max_lifetime"`
}

type openaiConfig struct {
	Key                 string `koanf:"key"`
	EmbeddingModel      string `koanf:"embedding_model" validate:"required"`
	EmbeddingDimensions int    `koanf:"embedding_dimensions" validate:"required"`
	EmbeddingBatchSize  int    `koanf:"embedding_batch_size"`
	EmbeddingWorkers    int    `koanf:"embedding_workers"`
}

type corsConfig struct {
	AllowOrigins []string `koanf:"allow_origins"`
	AllowMethods []string `koanf:"allow_methods"`
	AllowHeaders []string `koanf:"allow_headers"`
}

type milvusConfig struct {
	Address         string          `koanf:"address" validate:"required"`
	Collection      string          `koanf:"collection" validate:"required"`
	IndexHNSWConfig indexHNSWConfig `koanf:"index_hnsw_config"`
}

type indexHNSWConfig struct {
	MetricType     string `koanf:"metric_type"`
	M              int    `koanf:"m"`
	EfConstruction int    `koanf:"ef_construction"`
}

type s3Config struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Region    string `koanf:"region"`
	UseSSL    bool   `koanf:"use_ssl"`
	Bucket    string `koanf:"bucket"`
}

// ingestConfig selects the chunking strategy and carries both parameter
// sets. Values are read once at startup; chunkers are constructed from
// them and never reconfigured afterwards.
type ingestConfig struct {
	Strategy string `koanf:"strategy"`

	// algorithmic strategy (sizes in characters, overlap in sentences)
	TargetSize       int `koanf:"target_size"`
	MinSize          int `koanf:"min_size"`
	MaxSize          int `koanf:"max_size"`
	OverlapSentences int `koanf:"overlap_sentences"`

	// semantic strategy
	AtomicSize          int     `koanf:"atomic_size"`
	SimilarityThreshold float32 `koanf:"similarity_threshold"`
	MaxChunkSize        int     `koanf:"max_chunk_size"`
}

type config struct {
	Server   serverConfig   `koanf:"server"`
	Database databaseConfig `koanf:"database"`
	OpenAI   openaiConfig   `koanf:"openai"`
	LogLevel logLevel       `koanf:"log_level"`
	Dns      string         `koanf:"dns"`
	S3       s3Config       `koanf:"s3"`
	Cors     corsConfig     `koanf:"cors"`
	Milvus   milvusConfig   `koanf:"milvus"`
	Ingest   ingestConfig   `koanf:"ingest"`
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
		Port:    8000,
		Mode:    "release",
		AppName: "docuchat-backend",
	},
	Database: databaseConfig{
		Host:         "127.0.0.1",
		Port:         3306,
		User:         "root",
		Password:     "",
		Name:         "docuchat",
		MaxIdleConns: 4,
		MaxOpenConns: 16,
		MaxLifetime:  30,
	},
	OpenAI: openaiConfig{
		Key:                 "",
		EmbeddingModel:      "text-embedding-3-small",
		EmbeddingDimensions: 1536,
		EmbeddingBatchSize:  100,
		EmbeddingWorkers:    4,
	},
	LogLevel: Info,
	S3: s3Config{
		Endpoint:  "http://localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Region:    "us-east-1",
		UseSSL:    false,
		Bucket:    "uploads",
	},
	Milvus: milvusConfig{
		Address:    "localhost:19530",
		Collection: "chunks",
		IndexHNSWConfig: indexHNSWConfig{
			MetricType:     "IP",
			M:              16,
			EfConstruction: 128,
		},
	},
	Ingest: ingestConfig{
		Strategy:            "algorithmic",
		TargetSize:          550,
		MinSize:             400,
		MaxSize:             650,
		OverlapSentences:    1,
		AtomicSize:          500,
		SimilarityThreshold: 0.80,
		MaxChunkSize:        2000,
	},
}

var (
	Cfg  = defaultConfig
	once sync.Once
)

// Init loads configuration from the given YAML file (if present) and the
// APP_-prefixed environment, then validates. Only the first call loads;
// later calls are no-ops.
func Init(path string) error {
	var initErr error
	once.Do(func() {
		k := koanf.New(".")
		Cfg = defaultConfig

		if e := k.Load(file.Provider(path), yaml.Parser()); e != nil && !os.IsNotExist(e) {
			initErr = e
			return
		}

		// env APP_SERVER_PORT -> server.port
		if e := k.Load(env.Provider("APP_", ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "APP_")), "_", ".")
		}), nil); e != nil {
			initErr = e
			return
		}

		if e := k.Unmarshal("", &Cfg); e != nil {
			log.Errorf("failed to unmarshal config: %v", e)
			initErr = e
			return
		}

		if Cfg.Dns == "" {
			Cfg.Dns = buildMySQLDSN(Cfg.Database)
		}

		validate := validator.New()
		if err := validate.Struct(Cfg); err != nil {
			if errs, ok := err.(validator.ValidationErrors); ok {
				var sb strings.Builder
				sb.WriteString(fmt.Sprintf("%v config validation failed:\n", ModuleSetting))
				for _, e := range errs {
					sb.WriteString(fmt.Sprintf("  - %s: failed '%s' (value: %v)\n", e.Field(), e.Tag(), e.Value()))
				}
				log.Error(sb.String())
			} else {
				log.Errorf("config validation failed: %v", err)
			}
			initErr = err
		}
	})
	return initErr
}

func init() {
	_ = Init("config.yaml")
}
