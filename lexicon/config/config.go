package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Address string        `yaml:"address" env:"LEXICON_ADDRESS" env-default:":8080"`
	Timeout time.Duration `yaml:"timeout" env:"HTTP_SERVER_TIMEOUT" env-default:"5s"`
}

type Config struct {
	LogLevel         string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"INFO"`
	HTTPServer       HTTPServer    `yaml:"http_server"`
	MorphDict        string        `yaml:"morph_dict" env:"MORPH_DICT" env-default:"data/morph.tsv"`
	StopwordsFile    string        `yaml:"stopwords_file" env:"STOPWORDS_FILE"`
	Segmenter        string        `yaml:"segmenter" env:"SEGMENTER" env-default:"rules"`
	MaxDocumentSize  int64         `yaml:"max_document_size" env:"MAX_DOCUMENT_SIZE" env-default:"10485760"`
	ConcurrencyLimit int           `yaml:"concurrency_limit" env:"CONCURRENCY_LIMIT" env-default:"10"`
	RateLimit        int           `yaml:"rate_limit" env:"RATE_LIMIT" env-default:"100"`
	TokenTTL         time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"2m"`
	BrokerAddress    string        `yaml:"broker_address" env:"BROKER_ADDRESS"`
	MetricsEnabled   bool          `yaml:"metrics_enabled" env:"METRICS_ENABLED" env-default:"true"`
}

func MustLoad(configPath string) Config {
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config %q: %s", configPath, err)
	}
	return cfg
}

// Load reads the YAML file; environment variables override its values.
// An empty path uses the environment and defaults only.
func Load(configPath string) (Config, error) {
	var cfg Config
	if configPath == "" {
		err := cleanenv.ReadEnv(&cfg)
		return cfg, err
	}
	err := cleanenv.ReadConfig(configPath, &cfg)
	return cfg, err
}
