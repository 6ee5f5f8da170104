package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	OSMDB     DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Worker    WorkerConfig
	Optimizer OptimizerConfig
	Proximity ProximityConfig
	Catalog   CatalogConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
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
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	StatsCacheTTL time.Duration
	NodesCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	BatchSize         int
}

// OptimizerConfig - параметры модели выбора станций и бэкенда MILP
type OptimizerConfig struct {
	Solver      string
	GLPSOLPath  string
	Timeout     time.Duration
	NodeLimit   int
	MinStations int
	MinCoverage float64
}

// ProximityConfig - параметры анализа близости к узлам дорожной сети.
// DegreesPerMeter = 1e-5 соответствует буферу 0.005° на 500 м и корректно
// только в окрестности 52° с.ш. (Берлин).
type ProximityConfig struct {
	ThresholdM      float64
	Metric          string
	DegreesPerMeter float64
	HighwayTypes    []string
	BBox            [4]float64 // min_lon, min_lat, max_lon, max_lat
}

// CatalogConfig - значения по умолчанию для полей, отсутствующих в реестре
type CatalogConfig struct {
	DefaultCost     float64
	DefaultCoverage float64
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// В контейнере .env может отсутствовать - тогда работаем только с окружением
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        viper.GetString("API_HOST"),
			Port:        viper.GetInt("API_PORT"),
			Env:         viper.GetString("API_ENV"),
			CORSOrigins: viper.GetString("CORS_ALLOW_ORIGINS"), // через запятую, пусто - любой origin
		},
		Database: loadDatabase("DB"),
		OSMDB:    loadDatabase("OSM_DB"),
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			StatsCacheTTL: time.Duration(viper.GetInt("STATS_CACHE_TTL")) * time.Second,
			NodesCacheTTL: time.Duration(viper.GetInt("NODES_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			BatchSize:         viper.GetInt("WORKER_BATCH_SIZE"),
		},
		Optimizer: OptimizerConfig{
			Solver:      viper.GetString("OPTIMIZER_SOLVER"),
			GLPSOLPath:  viper.GetString("OPTIMIZER_GLPSOL_PATH"),
			Timeout:     time.Duration(viper.GetInt("OPTIMIZER_TIMEOUT")) * time.Second,
			NodeLimit:   viper.GetInt("OPTIMIZER_NODE_LIMIT"),
			MinStations: viper.GetInt("OPTIMIZER_MIN_STATIONS"),
			MinCoverage: viper.GetFloat64("OPTIMIZER_MIN_COVERAGE"),
		},
		Proximity: ProximityConfig{
			ThresholdM:      viper.GetFloat64("PROXIMITY_THRESHOLD_M"),
			Metric:          viper.GetString("PROXIMITY_METRIC"),
			DegreesPerMeter: viper.GetFloat64("PROXIMITY_DEGREES_PER_METER"),
			HighwayTypes:    parseList(viper.GetString("PROXIMITY_HIGHWAY_TYPES")),
		},
		Catalog: CatalogConfig{
			DefaultCost:     viper.GetFloat64("CATALOG_DEFAULT_COST"),
			DefaultCoverage: viper.GetFloat64("CATALOG_DEFAULT_COVERAGE"),
		},
	}

	bbox, err := parseBBox(viper.GetString("PROXIMITY_BBOX"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROXIMITY_BBOX: %w", err)
	}
	cfg.Proximity.BBox = bbox

	applyDefaults(cfg)

	return cfg, nil
}

func loadDatabase(prefix string) DatabaseConfig {
	return DatabaseConfig{
		Host:            viper.GetString(prefix + "_HOST"),
		Port:            viper.GetInt(prefix + "_PORT"),
		User:            viper.GetString(prefix + "_USER"),
		Password:        viper.GetString(prefix + "_PASSWORD"),
		DBName:          viper.GetString(prefix + "_NAME"),
		SSLMode:         viper.GetString(prefix + "_SSLMODE"),
		MaxConns:        viper.GetInt(prefix + "_MAX_CONNS"),
		MaxIdleConns:    viper.GetInt(prefix + "_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt(prefix+"_CONN_MAX_LIFETIME")) * time.Second,
		ConnMaxIdleTime: time.Duration(viper.GetInt(prefix+"_CONN_MAX_IDLE_TIME")) * time.Second,
	}
}

// setDefaults - значения, для которых 0 допустим: подставляются только
// если ключ не задан ни в .env, ни в окружении
func setDefaults() {
	viper.SetDefault("OPTIMIZER_MIN_STATIONS", 200)
	viper.SetDefault("OPTIMIZER_MIN_COVERAGE", 150)
	viper.SetDefault("PROXIMITY_THRESHOLD_M", 500)
	viper.SetDefault("CATALOG_DEFAULT_COST", 10000)
	viper.SetDefault("CATALOG_DEFAULT_COVERAGE", 1)
}

// Set default values if not provided
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.OSMDB.SSLMode == "" {
		cfg.OSMDB.SSLMode = "disable"
	}
	if cfg.Cache.StatsCacheTTL == 0 {
		cfg.Cache.StatsCacheTTL = time.Hour
	}
	if cfg.Cache.NodesCacheTTL == 0 {
		cfg.Cache.NodesCacheTTL = 24 * time.Hour
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "siting-optimization-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.BatchSize == 0 {
		cfg.Worker.BatchSize = 5
	}
	if cfg.Optimizer.Solver == "" {
		cfg.Optimizer.Solver = "branchbound"
	}
	if cfg.Optimizer.GLPSOLPath == "" {
		cfg.Optimizer.GLPSOLPath = "glpsol"
	}
	if cfg.Optimizer.Timeout == 0 {
		cfg.Optimizer.Timeout = 60 * time.Second
	}
	if cfg.Optimizer.NodeLimit == 0 {
		cfg.Optimizer.NodeLimit = 2_000_000
	}
	if cfg.Proximity.Metric == "" {
		cfg.Proximity.Metric = "angular"
	}
	if cfg.Proximity.DegreesPerMeter == 0 {
		cfg.Proximity.DegreesPerMeter = 0.00001
	}
	if len(cfg.Proximity.HighwayTypes) == 0 {
		cfg.Proximity.HighwayTypes = []string{
			"motorway", "trunk", "primary", "secondary", "tertiary",
			"unclassified", "residential", "living_street",
			"motorway_link", "trunk_link", "primary_link", "secondary_link", "tertiary_link",
		}
	}
	if cfg.Proximity.BBox == [4]float64{} {
		// Берлин
		cfg.Proximity.BBox = [4]float64{13.0883, 52.3382, 13.7611, 52.6755}
	}
}

func parseList(s string) []string {
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

func parseBBox(s string) ([4]float64, error) {
	var bbox [4]float64
	parts := parseList(s)
	if len(parts) == 0 {
		return bbox, nil
	}
	if len(parts) != 4 {
		return bbox, fmt.Errorf("expected 4 comma separated values, got %d", len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return bbox, fmt.Errorf("value %q: %w", p, err)
		}
		bbox[i] = v
	}
	if bbox[0] >= bbox[2] || bbox[1] >= bbox[3] {
		return bbox, fmt.Errorf("min must be less than max")
	}
	return bbox, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DSN - строка подключения в формате libpq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.DBName,
		d.SSLMode,
	)
}
