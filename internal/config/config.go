package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadHost        string        `mapstructure:"read_host"` // optional read replica
	ReadPort        int           `mapstructure:"read_port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DSN returns the primary database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ReadDSN returns the read-replica connection string. Falls back to the
// primary port when read_port is not configured.
func (c *DatabaseConfig) ReadDSN() string {
	port := c.ReadPort
	if port == 0 {
		port = c.Port
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.ReadHost, port, c.User, c.Password, c.DBName, c.SSLMode)
}

// NATSConfig holds NATS JetStream job-delivery configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	ConsumerName   string        `mapstructure:"consumer_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	AckWait        time.Duration `mapstructure:"ack_wait"` // stall window per work item
	MaxDeliver     int           `mapstructure:"max_deliver"`
}

// EthereumConfig holds Ethereum RPC configuration
type EthereumConfig struct {
	RPCURL     string `mapstructure:"rpc_url"`
	ChainID    int64  `mapstructure:"chain_id"`
	StartBlock uint64 `mapstructure:"start_block"` // floor for creation-block search
}

// IndexerConfig holds scan loop tuning
type IndexerConfig struct {
	ChunkSize        uint64        `mapstructure:"chunk_size"` // max blocks per log query
	EventRetries     uint64        `mapstructure:"event_retries"`
	StatementTimeout time.Duration `mapstructure:"statement_timeout"`
	PoolSize         int           `mapstructure:"pool_size"` // concurrent imports per worker
}

// MetadataConfig holds metadata fetch configuration
type MetadataConfig struct {
	IPFSGateway  string        `mapstructure:"ipfs_gateway"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// WorkerConfig holds configuration for the indexer worker binary
type WorkerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
	Indexer    IndexerConfig  `mapstructure:"indexer"`
	Metadata   MetadataConfig `mapstructure:"metadata"`
}

// EnqueueConfig holds configuration for the enqueue CLI
type EnqueueConfig struct {
	BaseConfig `mapstructure:",squash"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
}

// LoadWorkerConfig loads configuration for the indexer worker
func LoadWorkerConfig(configFile string, envPath string) (*WorkerConfig, error) {
	v := configureViper("worker", configFile, envPath)

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "COLLECTION_IMPORTS")
	v.SetDefault("nats.consumer_name", "indexer-worker")
	v.SetDefault("nats.ack_wait", "5m")
	v.SetDefault("nats.max_deliver", 3)
	v.SetDefault("ethereum.chain_id", 1)
	v.SetDefault("indexer.chunk_size", 3000)
	v.SetDefault("indexer.event_retries", 3)
	v.SetDefault("indexer.statement_timeout", "30s")
	v.SetDefault("indexer.pool_size", 4)
	v.SetDefault("metadata.ipfs_gateway", "https://ipfs.io")
	v.SetDefault("metadata.fetch_timeout", "30s")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config WorkerConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadEnqueueConfig loads configuration for the enqueue CLI
func LoadEnqueueConfig(configFile string, envPath string) (*EnqueueConfig, error) {
	v := configureViper("enqueue", configFile, envPath)

	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "COLLECTION_IMPORTS")
	v.SetDefault("ethereum.chain_id", 1)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config EnqueueConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("COLLECTION_INDEXER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds environment variables so viper can populate
// config struct fields when no config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"database.host",
		"database.port",
		"database.read_host",
		"database.read_port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		"ethereum.rpc_url",
		"ethereum.chain_id",
		"ethereum.start_block",
		"indexer.chunk_size",
		"indexer.event_retries",
		"indexer.statement_timeout",
		"indexer.pool_size",
		"metadata.ipfs_gateway",
		"metadata.fetch_timeout",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// ChdirRepoRoot walks up from the current directory until it finds the
// config/ directory, so binaries can be launched from any subdirectory.
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

func loadEnv(envPath string, service string) {
	// Shared base first, then local, then per-service local overrides.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate)
	}
}
