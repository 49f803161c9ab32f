package config

import (
	"log"
	"os"

	"admitpath/pkg/config"

	"gopkg.in/yaml.v3"
)

type TextGenConfig struct {
	BaseURL string `yaml:"base_url"`
}

type SweeperConfig struct {
	WithinDays      int `yaml:"within_days"`
	IntervalMinutes int `yaml:"interval_minutes"`
}

type Config struct {
	DB      config.DBConfig     `yaml:"db"`
	MQ      config.MQConfig     `yaml:"mq"`
	Redis   config.RedisConfig  `yaml:"redis"`
	Server  config.ServerConfig `yaml:"server"`
	TextGen TextGenConfig       `yaml:"textgen"`
	Sweeper SweeperConfig       `yaml:"sweeper"`
}

func Load() *Config {
	env := config.GetConfigEnv()
	configDir := config.GetEnv("CONFIG_DIR", "config")

	cfgMap, err := config.LoadConfig(env, configDir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var cfg Config
	cfgData, err := yaml.Marshal(cfgMap)
	if err != nil {
		log.Fatalf("failed to marshal config: %v", err)
	}
	if err := yaml.Unmarshal(cfgData, &cfg); err != nil {
		log.Fatalf("failed to unmarshal config: %v", err)
	}

	// Env vars win over file config.
	config.OverrideDBFromEnv(&cfg.DB)
	config.OverrideMQFromEnv(&cfg.MQ)
	config.OverrideRedisFromEnv(&cfg.Redis)
	config.OverrideServerFromEnv(&cfg.Server)
	if url := os.Getenv("TEXTGEN_BASE_URL"); url != "" {
		cfg.TextGen.BaseURL = url
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Sweeper.WithinDays <= 0 {
		cfg.Sweeper.WithinDays = 7
	}
	if cfg.Sweeper.IntervalMinutes <= 0 {
		cfg.Sweeper.IntervalMinutes = 60
	}

	return &cfg
}
