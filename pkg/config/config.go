package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Ingestion IngestionConfig
	Sources   SourcesConfig
	Analysis  AnalysisConfig
	Redis     RedisConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  int
	WriteTimeout int
	BodyLimit    int
}

type IngestionConfig struct {
	LookbackDays    int
	QueryLimit      int
	PolitenessDelay time.Duration
	Cooldown        time.Duration
	FetchTimeout    time.Duration
	// TopicQueries maps a policy topic to its ordered search variants.
	// Unconfigured topics fall back to the lowercased topic name.
	TopicQueries map[string][]string
}

type SourcesConfig struct {
	Reddit  RedditConfig
	YouTube YouTubeConfig
	Twitter TwitterConfig
}

type RedditConfig struct {
	Enabled   bool
	BaseURL   string
	Subreddit string
	UserAgent string
}

type YouTubeConfig struct {
	BaseURL string
	APIKey  string
}

type TwitterConfig struct {
	BaseURL     string
	BearerToken string
}

type AnalysisConfig struct {
	Categories []KeywordSet
	Regions    []KeywordSet
}

// KeywordSet is one row of an ordered matching table. Order in the
// config determines the first-match-wins tie-break.
type KeywordSet struct {
	Name     string
	Keywords []string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	CacheTTL time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/policypulse")

	viper.SetEnvPrefix("POLICYPULSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.readtimeout", 30)
	viper.SetDefault("server.writetimeout", 30)
	viper.SetDefault("server.bodylimit", 10*1024*1024)

	viper.SetDefault("ingestion.lookbackdays", 7)
	viper.SetDefault("ingestion.querylimit", 20)
	viper.SetDefault("ingestion.politenessdelay", "5s")
	viper.SetDefault("ingestion.cooldown", "15m")
	viper.SetDefault("ingestion.fetchtimeout", "10s")

	viper.SetDefault("sources.reddit.enabled", true)
	viper.SetDefault("sources.reddit.baseurl", "https://www.reddit.com")
	viper.SetDefault("sources.reddit.subreddit", "india")
	viper.SetDefault("sources.reddit.useragent", "policypulse/1.0")
	viper.SetDefault("sources.youtube.baseurl", "https://www.googleapis.com/youtube/v3")
	viper.SetDefault("sources.twitter.baseurl", "https://api.twitter.com/2")

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.cachettl", "10m")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}
	if cfg.Ingestion.LookbackDays <= 0 {
		return fmt.Errorf("ingestion.lookbackdays must be positive")
	}
	if cfg.Ingestion.QueryLimit <= 0 {
		return fmt.Errorf("ingestion.querylimit must be positive")
	}
	if cfg.Ingestion.Cooldown <= 0 {
		return fmt.Errorf("ingestion.cooldown must be positive")
	}
	for _, set := range cfg.Analysis.Categories {
		if set.Name == "" || len(set.Keywords) == 0 {
			return fmt.Errorf("analysis.categories entries need a name and keywords")
		}
	}
	for _, set := range cfg.Analysis.Regions {
		if set.Name == "" || len(set.Keywords) == 0 {
			return fmt.Errorf("analysis.regions entries need a name and keywords")
		}
	}
	return nil
}
