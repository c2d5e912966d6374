// Package config provides configuration management for the hppgate service.
// Configuration can be loaded from YAML files and overridden by environment variables.
package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"sync"
)

// Config holds all configuration for the hppgate service.
// Values can be set via YAML configuration file or environment variables.
// Environment variables take precedence over YAML values.
type Config struct {
	IsDebug     bool   `yaml:"is_debug" env:"DEBUG" env-default:"false"`
	Environment string `yaml:"environment" env:"GATEWAY_ENVIRONMENT" env-default:"test"`
	UserAgent   string `yaml:"user_agent" env:"GATEWAY_USER_AGENT" env-default:"hppgate-client/1.0"`
	// Timeout of a single gateway request, in seconds
	Timeout    int   `yaml:"timeout" env:"GATEWAY_TIMEOUT" env-default:"30"`
	LogRecords int64 `yaml:"log_records" env:"LOG_RECORDS" env-default:"0"`
	Listen     struct {
		BindIP   string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
		Port     string `yaml:"port" env:"PORT" env-default:"5200"`
		TLS      bool   `yaml:"tls_enabled" env:"TLS_ENABLED" env-default:"false"`
		CertFile string `yaml:"cert_file" env:"TLS_CERT_FILE" env-default:""`
		KeyFile  string `yaml:"key_file" env:"TLS_KEY_FILE" env-default:""`
	} `yaml:"listen"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:"admin"`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:"pass"`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:""`
	} `yaml:"mongo"`
	Merchant Merchant `yaml:"merchant"`
	Metrics  struct {
		Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"false"`
		BindIP  string `yaml:"bind_ip" env:"METRICS_BIND_IP" env-default:"0.0.0.0"`
		Port    string `yaml:"port" env:"METRICS_PORT" env-default:"9200"`
	} `yaml:"metrics"`
}

// Merchant values fill in empty fields of incoming API requests.
type Merchant struct {
	Account  string `yaml:"account" env:"MERCHANT_ACCOUNT" env-default:""`
	SkinCode string `yaml:"skin_code" env:"MERCHANT_SKIN_CODE" env-default:""`
	HmacKey  string `yaml:"hmac_key" env:"MERCHANT_HMAC_KEY" env-default:""`
	Username string `yaml:"username" env:"MERCHANT_USERNAME" env-default:""`
	Password string `yaml:"password" env:"MERCHANT_PASSWORD" env-default:""`
}

var instance *Config
var once sync.Once

// GetConfig loads configuration from the specified YAML file path.
// Configuration values can be overridden by environment variables.
// This function uses a singleton pattern and only loads the config once.
//
// Example:
//
//	cfg, err := config.GetConfig("config.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
func GetConfig(path string) (*Config, error) {
	var err error
	once.Do(func() {
		instance, err = ReadConfig(path)
	})
	return instance, err
}

// ReadConfig reads a fresh configuration without touching the singleton.
func ReadConfig(path string) (*Config, error) {
	conf := &Config{}
	if err := cleanenv.ReadConfig(path, conf); err != nil {
		desc, _ := cleanenv.GetDescription(conf, nil)
		return nil, fmt.Errorf("load config: %w; %s", err, desc)
	}
	return conf, nil
}
