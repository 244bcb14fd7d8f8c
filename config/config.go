package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Addr string `yaml:"-"` // computed after load, not read from file
	} `yaml:"server"`
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`
	DB struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		Username        string `yaml:"username"`
		Password        string `yaml:"password"`
		Database        string `yaml:"database"`
		Charset         string `yaml:"charset"`
		ParseTime       bool   `yaml:"parse_time"`
		DSN             string `yaml:"-"` // computed after load, not read from file
		MaxOpenConns    int    `yaml:"max_open_conns"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // minutes
	} `yaml:"database"`
	Knowledge struct {
		FilePath          string `yaml:"file_path"`           // static knowledge base (JSON)
		SynonymsPath      string `yaml:"synonyms_path"`       // synonym table (YAML)
		TopK              int    `yaml:"topk"`                // max results returned by retrieval
		ConnectTimeoutSec int    `yaml:"connect_timeout_sec"` // relational backend probe timeout
	} `yaml:"knowledge"`
	Timeouts struct {
		RequestSec  int `yaml:"request_sec"`
		ResponseSec int `yaml:"response_sec"`
		IdleSec     int `yaml:"idle_sec"`
	} `yaml:"timeouts"`
}

func Load() *Config {
	// Load .env first; if the file is missing, system environment still applies.
	_ = godotenv.Load()

	var cfg Config

	if data, err := os.ReadFile("config.yaml"); err == nil {
		err = yaml.Unmarshal(data, &cfg)
		if err != nil {
			log.Printf("Error loading config.yaml: %v, falling back to environment variables", err)
			return loadFromEnv()
		}
		log.Println("Loading configuration from config.yaml")

		cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)

		// DB credentials come from the environment when present.
		if envUsername := os.Getenv("DATABASE_USERNAME"); envUsername != "" {
			cfg.DB.Username = envUsername
		}
		if envPassword := os.Getenv("DATABASE_PASSWORD"); envPassword != "" {
			cfg.DB.Password = envPassword
		}

		applyKnowledgeDefaults(&cfg)
		buildDSN(&cfg)

		return &cfg
	}

	// No config.yaml, build everything from environment variables.
	return loadFromEnv()
}

func loadFromEnv() *Config {
	var cfg Config

	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)

	if username := os.Getenv("DATABASE_USERNAME"); username != "" {
		cfg.DB.Username = username
	}
	if password := os.Getenv("DATABASE_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if host := os.Getenv("DATABASE_HOST"); host != "" {
		cfg.DB.Host = host
	}
	if port := os.Getenv("DATABASE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.DB.Port = p
		}
	}
	if name := os.Getenv("DATABASE_NAME"); name != "" {
		cfg.DB.Database = name
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		cfg.DB.DSN = dsn
	}

	if kbPath := os.Getenv("KNOWLEDGE_FILE_PATH"); kbPath != "" {
		cfg.Knowledge.FilePath = kbPath
	}
	if synPath := os.Getenv("SYNONYMS_PATH"); synPath != "" {
		cfg.Knowledge.SynonymsPath = synPath
	}

	applyKnowledgeDefaults(&cfg)
	buildDSN(&cfg)

	log.Println("Configuration loaded from environment variables, some settings may be missing")
	return &cfg
}

func applyKnowledgeDefaults(cfg *Config) {
	if cfg.Knowledge.FilePath == "" {
		cfg.Knowledge.FilePath = "knowledge_base.json"
	}
	if cfg.Knowledge.SynonymsPath == "" {
		cfg.Knowledge.SynonymsPath = "synonyms.yaml"
	}
	if cfg.Knowledge.TopK <= 0 {
		cfg.Knowledge.TopK = 5
	}
	if cfg.Knowledge.ConnectTimeoutSec <= 0 {
		cfg.Knowledge.ConnectTimeoutSec = 5
	}
}

func buildDSN(cfg *Config) {
	if cfg.DB.DSN != "" || cfg.DB.Host == "" {
		return
	}
	if cfg.DB.Charset == "" {
		cfg.DB.Charset = "utf8mb4"
	}
	parseTime := ""
	if cfg.DB.ParseTime {
		parseTime = "&parseTime=true"
	}
	cfg.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s%s&timeout=%ds",
		cfg.DB.Username,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.Database,
		cfg.DB.Charset,
		parseTime,
		cfg.Knowledge.ConnectTimeoutSec)
}
