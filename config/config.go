package config

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	postgres_wrapper "github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/infra/postgres"
	redis_wrapper "github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/infra/redis"
)

type AppConfig struct {
	ServiceName string `yaml:"service_name"`

	// TickSize is the decimal price increment, e.g. "0.01".
	TickSize string `yaml:"tick_size"`

	Engine   EngineConfig                     `yaml:"engine"`
	Feed     FeedConfig                       `yaml:"feed"`
	Sink     SinkConfig                       `yaml:"sink"`
	Kafka    KafkaConfig                      `yaml:"kafka"`
	TradesDB *postgres_wrapper.PostgresConfig `yaml:"trades_db"`
	Redis    *redis_wrapper.RedisConfig       `yaml:"redis"`
}

type EngineConfig struct {
	// ReserveOrders pre-sizes the order tracker.
	ReserveOrders int `yaml:"reserve_orders"`
	// CommandBuffer is the book actor's queue depth.
	CommandBuffer int `yaml:"command_buffer"`
}

type FeedConfig struct {
	Symbol   string `yaml:"symbol"`
	MinPrice string `yaml:"min_price"`
	MaxPrice string `yaml:"max_price"`
	Spread   string `yaml:"spread"`
	Seed     int64  `yaml:"seed"`
}

type SinkConfig struct {
	CSVPath   string `yaml:"csv_path"`
	BatchSize int    `yaml:"batch_size"`
}

type KafkaConfig struct {
	Brokers    []string `yaml:"brokers"`
	TradeTopic string   `yaml:"trade_topic"`
	GroupID    string   `yaml:"group_id"`
}

// Load reads config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	sugar := zap.S().With("func", "config.Load", "filePath", filePath)
	sugar.Debug("load config...")

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}
	if err := yaml.Unmarshal(configBytes, cfg); err != nil {
		sugar.Error("failed to parse config file")
		return nil, err
	}

	zap.S().Debugf("config: %+v", cfg)
	return cfg, nil
}
