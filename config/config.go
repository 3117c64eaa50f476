package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type catalog struct {
	BaseURL           string        `mapstructure:"base_url"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	CurrencyRate      float64       `mapstructure:"currency_rate"`
	ExternalLimit     int           `mapstructure:"external_limit"`
	SuggestFetchLimit int           `mapstructure:"suggest_fetch_limit"`
	SuggestLimit      int           `mapstructure:"suggest_limit"`
	PageSize          int           `mapstructure:"page_size"`
	PopularRatingW    float64       `mapstructure:"popular_rating_weight"`
	PopularDiscountW  float64       `mapstructure:"popular_discount_weight"`
}

type storage struct {
	Driver      string `mapstructure:"driver"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

type events struct {
	Enabled            bool     `mapstructure:"enabled"`
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topic              string   `mapstructure:"topic"`
}

type checkout struct {
	PaymentDelay time.Duration `mapstructure:"payment_delay"`
	CompareLimit int           `mapstructure:"compare_limit"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	Catalog        catalog    `mapstructure:"catalog"`
	Storage        storage    `mapstructure:"storage"`
	Events         events     `mapstructure:"events"`
	Checkout       checkout   `mapstructure:"checkout"`
}

func Load() Config {
	setDefaults()

	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.Unmarshal(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func setDefaults() {
	viper.SetDefault("log_level", "info")
	viper.SetDefault("http_server_addr", ":8080")

	viper.SetDefault("catalog.base_url", "https://dummyjson.com")
	viper.SetDefault("catalog.request_timeout", "10s")
	viper.SetDefault("catalog.currency_rate", 85.5)
	viper.SetDefault("catalog.external_limit", 100)
	viper.SetDefault("catalog.suggest_fetch_limit", 15)
	viper.SetDefault("catalog.suggest_limit", 5)
	viper.SetDefault("catalog.page_size", 12)
	viper.SetDefault("catalog.popular_rating_weight", 10.0)
	viper.SetDefault("catalog.popular_discount_weight", 1.0)

	viper.SetDefault("storage.driver", "sqlite")
	viper.SetDefault("storage.sqlite_path", "storefront.db")

	viper.SetDefault("events.enabled", false)
	viper.SetDefault("events.topic", "client-events")

	viper.SetDefault("checkout.payment_delay", "1500ms")
	viper.SetDefault("checkout.compare_limit", 4)
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q

	Catalog:
	BaseURL=%q
	RequestTimeout=%q
	CurrencyRate=%v
	ExternalLimit=%d
	PageSize=%d

	Storage:
	Driver=%q
	SQLitePath=%q

	Events:
	Enabled=%v
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topic=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.Catalog.BaseURL,
		c.Catalog.RequestTimeout.String(),
		c.Catalog.CurrencyRate,
		c.Catalog.ExternalLimit,
		c.Catalog.PageSize,
		c.Storage.Driver,
		c.Storage.SQLitePath,
		c.Events.Enabled,
		c.Events.SeedBrokers,
		c.Events.SchemaRegistryURLs,
		c.Events.Topic,
	)
}
