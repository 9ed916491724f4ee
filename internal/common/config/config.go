package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/amoylab/watson/internal/common/cnst"
	"github.com/amoylab/watson/pkg/helper"
	"github.com/amoylab/watson/pkg/utils"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type (
	// Config is the top level SDK configuration
	Config struct {
		Logger            LoggerConfig  `yaml:"logger" toml:"logger"`
		HTTP              HTTPConfig    `yaml:"http" toml:"http"`
		Stream            StreamConfig  `yaml:"stream" toml:"stream"`
		Metrics           MetricsConfig `yaml:"metrics" toml:"metrics"`
		Trace             TraceConfig   `yaml:"trace" toml:"trace"`
		SpeechToText      ServiceConfig `yaml:"speech_to_text" toml:"speech_to_text"`
		TextToSpeech      ServiceConfig `yaml:"text_to_speech" toml:"text_to_speech"`
		Assistant         ServiceConfig `yaml:"assistant" toml:"assistant"`
		Discovery         ServiceConfig `yaml:"discovery" toml:"discovery"`
		VisualRecognition ServiceConfig `yaml:"visual_recognition" toml:"visual_recognition"`
	}

	// ServiceConfig describes one Watson service endpoint
	ServiceConfig struct {
		URL            string            `yaml:"url" toml:"url"`
		Version        string            `yaml:"version" toml:"version"` // dated API version, e.g. 2018-07-10
		Auth           AuthConfig        `yaml:"auth" toml:"auth"`
		Headers        map[string]string `yaml:"headers" toml:"headers"`
		LearningOptOut bool              `yaml:"learning_opt_out" toml:"learning_opt_out"`
	}

	// AuthConfig selects the credential provider for a service
	AuthConfig struct {
		Type     string `yaml:"type" toml:"type"` // none, basic, bearer
		Username string `yaml:"username" toml:"username"`
		Password string `yaml:"password" toml:"password"`
		Token    string `yaml:"token" toml:"token"`
	}

	// HTTPConfig configures the request/response transport
	HTTPConfig struct {
		Timeout               time.Duration `yaml:"timeout" toml:"timeout"`
		DisableCertValidation bool          `yaml:"disable_cert_validation" toml:"disable_cert_validation"`
	}

	// StreamConfig configures websocket connections
	StreamConfig struct {
		HandshakeTimeout time.Duration `yaml:"handshake_timeout" toml:"handshake_timeout"`
		ReadBufferSize   int           `yaml:"read_buffer_size" toml:"read_buffer_size"`
		WriteBufferSize  int           `yaml:"write_buffer_size" toml:"write_buffer_size"`
	}

	// MetricsConfig configures prometheus collectors
	MetricsConfig struct {
		Enabled   bool      `yaml:"enabled" toml:"enabled"`
		Namespace string    `yaml:"namespace" toml:"namespace"`
		Buckets   []float64 `yaml:"buckets" toml:"buckets"`
	}

	// TraceConfig represents OpenTelemetry tracing configuration
	TraceConfig struct {
		Enabled     bool              `yaml:"enabled" toml:"enabled"`
		ServiceName string            `yaml:"service_name" toml:"service_name"`
		Endpoint    string            `yaml:"endpoint" toml:"endpoint"` // e.g. localhost:4317 or http://localhost:4318
		Protocol    string            `yaml:"protocol" toml:"protocol"` // grpc or http
		Insecure    bool              `yaml:"insecure" toml:"insecure"`
		SamplerRate float64           `yaml:"sampler_rate" toml:"sampler_rate"` // 0.0~1.0
		Environment string            `yaml:"environment" toml:"environment"`
		Headers     map[string]string `yaml:"headers" toml:"headers"`
	}

	// LoggerConfig represents the logger configuration
	LoggerConfig struct {
		Level      string `yaml:"level" toml:"level"`             // debug, info, warn, error
		Format     string `yaml:"format" toml:"format"`           // json, console
		Output     string `yaml:"output" toml:"output"`           // stdout, file
		FilePath   string `yaml:"file_path" toml:"file_path"`     // path to log file when output is file
		MaxSize    int    `yaml:"max_size" toml:"max_size"`       // max size of log file in MB
		MaxBackups int    `yaml:"max_backups" toml:"max_backups"` // max number of backup files
		MaxAge     int    `yaml:"max_age" toml:"max_age"`         // max age of backup files in days
		Compress   bool   `yaml:"compress" toml:"compress"`
		Color      bool   `yaml:"color" toml:"color"`
		Stacktrace bool   `yaml:"stacktrace" toml:"stacktrace"`
		TimeZone   string `yaml:"time_zone" toml:"time_zone"`
		TimeFormat string `yaml:"time_format" toml:"time_format"`
	}
)

// LoadConfig loads configuration from a YAML or TOML file with environment variable support
func LoadConfig(filename string) (*Config, string, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfgPath := helper.GetCfgPath(filename)
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, cfgPath, err
	}

	cfg, err := Parse(filepath.Ext(cfgPath), data)
	if err != nil {
		return nil, cfgPath, err
	}
	return cfg, cfgPath, nil
}

// Parse decodes configuration content. ext selects the format (".toml" or yaml otherwise).
func Parse(ext string, data []byte) (*Config, error) {
	data = resolveEnv(data)

	var cfg Config
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("decode toml config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("decode yaml config: %w", err)
		}
	}

	cfg.SetDefaults()
	return &cfg, nil
}

// SetDefaults fills zero values with SDK defaults
func (c *Config) SetDefaults() {
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = 60 * time.Second
	}
	if c.Stream.HandshakeTimeout <= 0 {
		c.Stream.HandshakeTimeout = 30 * time.Second
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "watson"
	}
	if c.Trace.ServiceName == "" {
		c.Trace.ServiceName = cnst.AppName
	}
	defaultURL(&c.SpeechToText, cnst.DefaultSpeechToTextURL)
	defaultURL(&c.TextToSpeech, cnst.DefaultTextToSpeechURL)
	defaultURL(&c.Assistant, cnst.DefaultAssistantURL)
	defaultURL(&c.Discovery, cnst.DefaultDiscoveryURL)
	defaultURL(&c.VisualRecognition, cnst.DefaultVisualRecognitionURL)
	defaultVersion(&c.Assistant, cnst.DefaultAssistantVersion)
	defaultVersion(&c.Discovery, cnst.DefaultDiscoveryVersion)
	defaultVersion(&c.VisualRecognition, cnst.DefaultVisualRecognitionVersion)
}

func defaultURL(s *ServiceConfig, url string) {
	if s.URL == "" {
		s.URL = url
	}
	s.URL = strings.TrimRight(s.URL, "/")
}

func defaultVersion(s *ServiceConfig, version string) {
	if s.Version == "" {
		s.Version = version
	}
}

// RequestHeaders returns the configured headers plus the learning opt-out
// header when enabled
func (s ServiceConfig) RequestHeaders() map[string]string {
	out := utils.MergeStringMaps(s.Headers)
	if s.LearningOptOut {
		out[cnst.HeaderLearningOptOut] = "true"
	}
	return out
}

// resolveEnv replaces environment variable placeholders in config content
func resolveEnv(content []byte) []byte {
	regex := regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

	return regex.ReplaceAllFunc(content, func(match []byte) []byte {
		matches := regex.FindSubmatch(match)
		envKey := string(matches[1])
		var defaultValue string

		if len(matches) > 2 {
			defaultValue = string(matches[2])
		}

		if value, exists := os.LookupEnv(envKey); exists {
			return []byte(value)
		}
		return []byte(defaultValue)
	})
}
