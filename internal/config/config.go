package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig
	OSMDB         DatabaseConfig
	Redis         RedisConfig
	Cache         CacheConfig
	Log           LogConfig
	Worker        WorkerConfig
	Search        SearchConfig
	Google        GoogleConfig
	IPGeo         IPGeoConfig
	Elasticsearch ElasticsearchConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
	// CORSOrigins - список разрешенных origin через запятую
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

type CacheConfig struct {
	SearchCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	MaxRetries    int
	BatchSize     int
}

// SearchConfig - параметры цикла расширения радиуса
type SearchConfig struct {
	Provider        string
	Query           string
	InitialRadiusKm float64
	GrowthFactor    float64
	MinResults      int
	MaxAttempts     int
	MaxRadiusKm     float64
	AttemptTimeout  time.Duration
}

type GoogleConfig struct {
	APIKey         string
	BaseURL        string
	Language       string
	RequestTimeout int
	// RateLimit - запросов в секунду к Places API
	RateLimit int
}

type IPGeoConfig struct {
	Enabled        bool
	BaseURL        string
	RequestTimeout int
}

type ElasticsearchConfig struct {
	Addresses []string
	Username  string
	Password  string
	Index     string
}

const (
	ProviderGoogle        = "google"
	ProviderOSM           = "osm"
	ProviderElasticsearch = "elasticsearch"
)

// Load загружает конфигурацию из .env в текущей директории и переменных окружения
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom загружает конфигурацию из указанного файла. Отсутствие файла не ошибка:
// значения берутся из окружения и значений по умолчанию.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),

			CORSOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		},
		OSMDB: DatabaseConfig{
			Host:            v.GetString("OSM_DB_HOST"),
			Port:            v.GetInt("OSM_DB_PORT"),
			User:            v.GetString("OSM_DB_USER"),
			Password:        v.GetString("OSM_DB_PASSWORD"),
			DBName:          v.GetString("OSM_DB_NAME"),
			SSLMode:         v.GetString("OSM_DB_SSLMODE"),
			MaxConns:        v.GetInt("OSM_DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("OSM_DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("OSM_DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("OSM_DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			PoolSize: v.GetInt("REDIS_POOL_SIZE"),
		},
		Cache: CacheConfig{
			SearchCacheTTL: time.Duration(v.GetInt("SEARCH_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:       v.GetBool("WORKER_ENABLED"),
			ConsumerGroup: v.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:    v.GetInt("WORKER_MAX_RETRIES"),
			BatchSize:     v.GetInt("WORKER_BATCH_SIZE"),
		},
		Search: SearchConfig{
			Provider:        strings.ToLower(v.GetString("SEARCH_PROVIDER")),
			Query:           v.GetString("SEARCH_QUERY"),
			InitialRadiusKm: v.GetFloat64("SEARCH_INITIAL_RADIUS_KM"),
			GrowthFactor:    v.GetFloat64("SEARCH_GROWTH_FACTOR"),
			MinResults:      v.GetInt("SEARCH_MIN_RESULTS"),
			MaxAttempts:     v.GetInt("SEARCH_MAX_ATTEMPTS"),
			MaxRadiusKm:     v.GetFloat64("SEARCH_MAX_RADIUS_KM"),
			AttemptTimeout:  time.Duration(v.GetInt("SEARCH_ATTEMPT_TIMEOUT")) * time.Second,
		},
		Google: GoogleConfig{
			APIKey:         v.GetString("GOOGLE_PLACES_API_KEY"),
			BaseURL:        v.GetString("GOOGLE_PLACES_BASE_URL"),
			Language:       v.GetString("GOOGLE_PLACES_LANGUAGE"),
			RequestTimeout: v.GetInt("GOOGLE_PLACES_REQUEST_TIMEOUT"),
			RateLimit:      v.GetInt("GOOGLE_PLACES_RATE_LIMIT"),
		},
		IPGeo: IPGeoConfig{
			Enabled:        v.GetBool("IPGEO_ENABLED"),
			BaseURL:        v.GetString("IPGEO_BASE_URL"),
			RequestTimeout: v.GetInt("IPGEO_REQUEST_TIMEOUT"),
		},
		Elasticsearch: ElasticsearchConfig{
			Addresses: splitList(v.GetString("ELASTICSEARCH_ADDRESSES")),
			Username:  v.GetString("ELASTICSEARCH_USERNAME"),
			Password:  v.GetString("ELASTICSEARCH_PASSWORD"),
			Index:     v.GetString("ELASTICSEARCH_INDEX"),
		},
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.CORSOrigins == "" {
		c.Server.CORSOrigins = "http://localhost:3000,http://localhost:5173"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "nearby-search-workers"
	}
	if c.Worker.MaxRetries == 0 {
		c.Worker.MaxRetries = 3
	}
	if c.Worker.BatchSize == 0 {
		c.Worker.BatchSize = 20
	}

	if c.Search.Provider == "" {
		c.Search.Provider = ProviderGoogle
	}
	if c.Search.Query == "" {
		c.Search.Query = "restaurant"
	}
	if c.Search.InitialRadiusKm == 0 {
		c.Search.InitialRadiusKm = 50
	}
	if c.Search.GrowthFactor == 0 {
		c.Search.GrowthFactor = 1.1
	}
	if c.Search.MinResults == 0 {
		c.Search.MinResults = 10
	}
	if c.Search.MaxAttempts == 0 {
		c.Search.MaxAttempts = 100
	}
	if c.Search.MaxRadiusKm == 0 {
		c.Search.MaxRadiusKm = 20037.5
	}
	if c.Search.AttemptTimeout == 0 {
		c.Search.AttemptTimeout = 10 * time.Second
	}

	if c.Google.BaseURL == "" {
		c.Google.BaseURL = "https://maps.googleapis.com/maps/api/place"
	}
	if c.Google.RequestTimeout == 0 {
		c.Google.RequestTimeout = 10
	}
	if c.Google.RateLimit == 0 {
		c.Google.RateLimit = 10
	}

	if c.IPGeo.BaseURL == "" {
		c.IPGeo.BaseURL = "http://ip-api.com/json"
	}
	if c.IPGeo.RequestTimeout == 0 {
		c.IPGeo.RequestTimeout = 5
	}

	if len(c.Elasticsearch.Addresses) == 0 {
		c.Elasticsearch.Addresses = []string{"http://localhost:9200"}
	}
	if c.Elasticsearch.Index == "" {
		c.Elasticsearch.Index = "places"
	}

	if c.OSMDB.SSLMode == "" {
		c.OSMDB.SSLMode = "disable"
	}
	if c.OSMDB.MaxConns == 0 {
		c.OSMDB.MaxConns = 10
	}
	if c.OSMDB.MaxIdleConns == 0 {
		c.OSMDB.MaxIdleConns = 5
	}
}

// Validate проверяет согласованность параметров поиска
func (c *Config) Validate() error {
	switch c.Search.Provider {
	case ProviderGoogle, ProviderOSM, ProviderElasticsearch:
	default:
		return fmt.Errorf("unknown search provider %q", c.Search.Provider)
	}
	if c.Search.GrowthFactor <= 1 {
		return fmt.Errorf("search growth factor must be greater than 1, got %v", c.Search.GrowthFactor)
	}
	if c.Search.InitialRadiusKm <= 0 {
		return fmt.Errorf("search initial radius must be positive, got %v", c.Search.InitialRadiusKm)
	}
	if c.Search.MinResults < 1 {
		return fmt.Errorf("search min results must be at least 1, got %d", c.Search.MinResults)
	}
	if c.Search.Provider == ProviderGoogle && c.Google.APIKey == "" {
		return fmt.Errorf("GOOGLE_PLACES_API_KEY is required for the google provider")
	}
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DSN - строка подключения в формате key=value для драйвера pgx
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.DBName,
		c.SSLMode,
	)
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) GetOSMDatabaseDSN() string {
	return c.OSMDB.DSN()
}

func (c *Config) GetRedisAddr() string {
	return c.Redis.Addr()
}
