package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/qawafi/arud/internal/prosody/detector"
	"github.com/qawafi/arud/internal/prosody/segmenter"
	"github.com/qawafi/arud/internal/resultcache"
)

// ErrNoConfigFile is returned by FindConfigFile when no arud.yaml exists up the tree
var ErrNoConfigFile = errors.New("no arud.yaml found")

var configNames = []string{"arud.yaml", "arud.yml"}

// Config represents the arud configuration
type Config struct {
	Detector  DetectorConfig  `mapstructure:"detector"`
	Segmenter SegmenterConfig `mapstructure:"segmenter"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Log       LogConfig       `mapstructure:"log"`
}

// DetectorConfig holds the detector settings
type DetectorConfig struct {
	TopK          int     `mapstructure:"top_k"`
	MinSimilarity float64 `mapstructure:"min_similarity"`
	LengthBoost   float64 `mapstructure:"length_boost"`
}

// SegmenterConfig holds the forward segmenter bounds
type SegmenterConfig struct {
	MinPhonemes int `mapstructure:"min_phonemes"`
	MaxPhonemes int `mapstructure:"max_phonemes"`
	MaxPaths    int `mapstructure:"max_paths"`
}

// CacheConfig selects and configures the result cache
type CacheConfig struct {
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
	Prefix  string        `mapstructure:"prefix"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

// RedisConfig holds the Redis connection settings
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads the configuration. An empty path searches for arud.yaml from the
// working directory upwards; a missing file leaves the defaults in place.
// ARUD_* environment variables override both, e.g. ARUD_CACHE_BACKEND=redis.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("arud")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		found, err := FindConfigFile()
		if err != nil && !errors.Is(err, ErrNoConfigFile) {
			return nil, err
		}
		path = found
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("detector.top_k", 3)
	v.SetDefault("detector.min_similarity", 0.0)
	v.SetDefault("detector.length_boost", detector.DefaultLengthBoost)

	seg := segmenter.DefaultOptions()
	v.SetDefault("segmenter.min_phonemes", seg.MinPhonemes)
	v.SetDefault("segmenter.max_phonemes", seg.MaxPhonemes)
	v.SetDefault("segmenter.max_paths", seg.MaxPaths)

	cache := resultcache.DefaultConfig()
	v.SetDefault("cache.backend", cache.Backend)
	v.SetDefault("cache.ttl", cache.DefaultTTL)
	v.SetDefault("cache.prefix", cache.Prefix)
	v.SetDefault("cache.redis.addr", cache.Redis.Addr)
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)

	v.SetDefault("log.level", "info")
}

// FindConfigFile walks up from the working directory looking for arud.yaml
func FindConfigFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, name := range configNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoConfigFile
		}
		dir = parent
	}
}

// DetectorOptions converts the detector section
func (c *Config) DetectorOptions() detector.Options {
	return detector.Options{
		LengthBoost:   c.Detector.LengthBoost,
		MinSimilarity: c.Detector.MinSimilarity,
	}
}

// SegmenterOptions converts the segmenter section
func (c *Config) SegmenterOptions() segmenter.Options {
	return segmenter.Options{
		MinPhonemes: c.Segmenter.MinPhonemes,
		MaxPhonemes: c.Segmenter.MaxPhonemes,
		MaxPaths:    c.Segmenter.MaxPaths,
	}
}

// ResultCacheConfig converts the cache section
func (c *Config) ResultCacheConfig() resultcache.Config {
	return resultcache.Config{
		Backend:    c.Cache.Backend,
		DefaultTTL: c.Cache.TTL,
		Prefix:     c.Cache.Prefix,
		Redis: resultcache.RedisConfig{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
		},
	}
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Detector.TopK < 1 {
		return fmt.Errorf("detector.top_k must be at least 1, got: %d", cfg.Detector.TopK)
	}
	if cfg.Detector.MinSimilarity < 0 || cfg.Detector.MinSimilarity > 1 {
		return fmt.Errorf("detector.min_similarity must be within [0, 1], got: %g", cfg.Detector.MinSimilarity)
	}
	if cfg.Detector.LengthBoost < 0 {
		return fmt.Errorf("detector.length_boost must not be negative, got: %g", cfg.Detector.LengthBoost)
	}

	if cfg.Segmenter.MinPhonemes < 1 || cfg.Segmenter.MinPhonemes > cfg.Segmenter.MaxPhonemes {
		return fmt.Errorf("segmenter.min_phonemes must be between 1 and max_phonemes (%d), got: %d",
			cfg.Segmenter.MaxPhonemes, cfg.Segmenter.MinPhonemes)
	}
	if cfg.Segmenter.MaxPaths < 0 {
		return fmt.Errorf("segmenter.max_paths must not be negative, got: %d", cfg.Segmenter.MaxPaths)
	}

	switch cfg.Cache.Backend {
	case resultcache.BackendMemory, resultcache.BackendRedis, resultcache.BackendNone:
	default:
		return fmt.Errorf("cache.backend must be one of memory, redis, none, got: %s", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got: %s", cfg.Cache.TTL)
	}
	return nil
}
