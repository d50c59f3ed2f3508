package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	ConfigFile = "./config.yml"
	EnvFile    = "./config.env"
	EnvPrefix  = "DCAP"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit          string        `yaml:"git_commit" envconfig:"DCAP_GIT_COMMIT"`
	GitTag             string        `yaml:"git_tag" envconfig:"DCAP_GIT_TAG"`
	BuildTime          string        `yaml:"build_time" envconfig:"DCAP_BUILD_TIME"`
	IsProduction       bool          `yaml:"is_production" envconfig:"DCAP_IS_PRODUCTION"`
	LogLevel           zapcore.Level `yaml:"log_level" envconfig:"DCAP_LOG_LEVEL"`
	LogFolder          string        `yaml:"log_folder" envconfig:"DCAP_LOG_FOLDER"`
	LogMaxSize         int           `yaml:"log_max_size" envconfig:"DCAP_LOG_MAX_SIZE"` // in megabytes
	OpsEndpointsEnable bool          `yaml:"ops_endpoints_enable" envconfig:"DCAP_OPS_ENDPOINTS_ENABLE"`
	Server             ServerConfig  `yaml:"server"`
	Storage            StorageConfig `yaml:"storage"`
	BoltDB             BoltDBConfig  `yaml:"boltdb"`
	SQLite             SQLiteConfig  `yaml:"sqlite"`
	Redis              RedisConfig   `yaml:"redis"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"DCAP_SERVER_HOST"`
	Port            string        `yaml:"port" envconfig:"DCAP_SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"DCAP_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"DCAP_SERVER_WRITE_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"DCAP_SERVER_REQUEST_TIMEOUT"` // Time to wait for a request to finish
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"DCAP_SERVER_SHUTDOWN_TIMEOUT"`
}

// StorageConfig selects the collections backend. DataDir is optional,
// see ResolveDataDirectory for the fallback order.
type StorageConfig struct {
	Backend string `yaml:"backend" envconfig:"DCAP_STORAGE_BACKEND"`
	DataDir string `yaml:"data_dir" envconfig:"DCAP_STORAGE_DATA_DIR"`
	SeedDir string `yaml:"seed_dir" envconfig:"DCAP_STORAGE_SEED_DIR"`
}

type BoltDBConfig struct {
	FileName   string        `yaml:"filename" envconfig:"DCAP_BOLTDB_FILENAME"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"DCAP_BOLTDB_TIMEOUT"`
	BucketName string        `yaml:"bucket_name" envconfig:"DCAP_BOLTDB_BUCKET_NAME"`
}

type SQLiteConfig struct {
	FileName string `yaml:"filename" envconfig:"DCAP_SQLITE_FILENAME"`
}

type RedisConfig struct {
	Host          string        `yaml:"host" envconfig:"DCAP_REDIS_HOST"`
	Port          string        `yaml:"port" envconfig:"DCAP_REDIS_PORT"`
	DialTimeout   time.Duration `yaml:"dial_timeout" envconfig:"DCAP_REDIS_DIAL_TIMEOUT"`
	ReadTimeout   time.Duration `yaml:"read_timeout" envconfig:"DCAP_REDIS_READ_TIMEOUT"`
	WriteTimeout  time.Duration `yaml:"write_timeout" envconfig:"DCAP_REDIS_WRITE_TIMEOUT"`
	PoolSize      int           `yaml:"pool_size" envconfig:"DCAP_REDIS_POOL_SIZE"`
	PoolTimeout   time.Duration `yaml:"pool_timeout" envconfig:"DCAP_REDIS_POOL_TIMEOUT"`
	Username      string        `yaml:"username" envconfig:"DCAP_REDIS_USERNAME"`
	Password      string        `yaml:"password" envconfig:"DCAP_REDIS_PASSWORD" json:"-"`
	DatabaseIndex int           `yaml:"db_index" envconfig:"DCAP_REDIS_DATABASE_INDEX"`
	KeyPrefix     string        `yaml:"key_prefix" envconfig:"DCAP_REDIS_KEY_PREFIX"`
}

// LoadConfigFile provides an instance of config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environments variables and provides an instance of the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig setup defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	setDefaults(config)

	if len(config.Server.Host) == 0 || len(config.Server.Port) == 0 {
		return errors.New("make sure to set valid server address and port in configuration file")
	}

	switch config.Storage.Backend {
	case JSONBackend, BoltBackend, SQLiteBackend:
	case RedisBackend:
		if len(config.Redis.Host) == 0 || len(config.Redis.Port) == 0 {
			return errors.New("make sure to set valid redis address and port in configuration file")
		}
	default:
		return fmt.Errorf("unknown storage backend %q (supported: %s, %s, %s, %s)",
			config.Storage.Backend, JSONBackend, BoltBackend, SQLiteBackend, RedisBackend)
	}

	return nil
}

func setDefaults(config *Config) {
	if config.LogFolder == "" {
		config.LogFolder = "./logs"
	}
	if config.LogMaxSize <= 0 {
		config.LogMaxSize = 10
	}
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 10 * time.Second
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = 15 * time.Second
	}
	if config.Server.RequestTimeout == 0 {
		config.Server.RequestTimeout = 10 * time.Second
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = 30 * time.Second
	}
	if config.Storage.Backend == "" {
		config.Storage.Backend = JSONBackend
	}
	if config.BoltDB.FileName == "" {
		config.BoltDB.FileName = "catalog.bolt.db"
	}
	if config.BoltDB.Timeout == 0 {
		config.BoltDB.Timeout = 5 * time.Second
	}
	if config.BoltDB.BucketName == "" {
		config.BoltDB.BucketName = "catalog"
	}
	if config.SQLite.FileName == "" {
		config.SQLite.FileName = "catalog.sqlite.db"
	}
	if config.Redis.KeyPrefix == "" {
		config.Redis.KeyPrefix = "catalog:"
	}
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data. Both files are optional.
func LoadAndInitConfigs(configFile, envFile, gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile(configFile)
	if errors.Is(err, os.ErrNotExist) {
		config, err = &Config{}, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Set the environment configuration.
	err = godotenv.Load(envFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return config, fmt.Errorf("failed to set environment configurations: %s", err)
	}

	// Use environment variables with prefix `DCAP`.
	err = LoadConfigEnvs(EnvPrefix, config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
