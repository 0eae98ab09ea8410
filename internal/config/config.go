package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServiceEnvironment    string `envconfig:"SERVICE_ENVIRONMENT" default:"development"`
	ServiceAPIPort        string `envconfig:"SERVICE_API_PORT" default:"8080"`
	PageProfilePath       string `envconfig:"PAGE_PROFILE_PATH" default:"page.yaml"`
	JournalEnabled        bool   `envconfig:"JOURNAL_ENABLED" default:"false"`
	JournalPath           string `envconfig:"JOURNAL_PATH" default:"behavior.db"`
	JournalBatchSizeMax   int    `envconfig:"JOURNAL_BATCH_SIZE_MAX" default:"200"`
	JournalFlushTimeoutMS int    `envconfig:"JOURNAL_FLUSH_TIMEOUT_MS" default:"2000"`
	JournalBufferSize     int    `envconfig:"JOURNAL_BUFFER_SIZE" default:"1000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
