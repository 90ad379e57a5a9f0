// Package config resolves envioscan settings from defaults, an optional YAML
// file, a .env file and the process environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/envioscan/internal/llm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type LogConfig struct {
	Path   string `yaml:"path"`
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Stderr bool   `yaml:"stderr"`
}

type ChromeConfig struct {
	ExecPath  string `yaml:"execPath"`
	TimeoutMs int    `yaml:"timeoutMs" validate:"gt=0"`
	Width     int    `yaml:"width" validate:"gt=0"`
	Height    int    `yaml:"height" validate:"gt=0"`
}

type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"useSSL"`
}

// Enabled reports whether object storage has enough settings to connect.
func (s StorageConfig) Enabled() bool {
	return s.Endpoint != ""
}

type Config struct {
	DataDir string        `yaml:"dataDir" validate:"required"`
	DBPath  string        `yaml:"dbPath" validate:"required"`
	Log     LogConfig     `yaml:"log"`
	Chrome  ChromeConfig  `yaml:"chrome"`
	LLM     llm.LLMConfig `yaml:"llm"`
	Storage StorageConfig `yaml:"storage"`
}

// Default returns the configuration used when nothing is overridden.
// Paths live under ~/.envioscan.
func Default() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	return defaultsAt(filepath.Join(home, ".envioscan")), nil
}

func defaultsAt(dataDir string) *Config {
	return &Config{
		DataDir: dataDir,
		DBPath:  filepath.Join(dataDir, "envioscan.db"),
		Log: LogConfig{
			Path:  filepath.Join(dataDir, "envioscan.log"),
			Level: "info",
		},
		Chrome: ChromeConfig{
			TimeoutMs: 30000,
			Width:     1600,
			Height:    1000,
		},
		LLM: llm.DefaultConfig(),
		Storage: StorageConfig{
			Region: "us-east-1",
			UseSSL: true,
		},
	}
}

// Load resolves configuration. ENVIOSCAN_HOME moves the data directory and
// ENVIOSCAN_CONFIG names the YAML file (default <data dir>/config.yaml). A
// missing file is not an error; a malformed one is.
func Load() (*Config, error) {
	// .env never overrides variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var cfg *Config
	if home := os.Getenv("ENVIOSCAN_HOME"); home != "" {
		cfg = defaultsAt(home)
	} else {
		d, err := Default()
		if err != nil {
			return nil, err
		}
		cfg = d
	}

	path := os.Getenv("ENVIOSCAN_CONFIG")
	if path == "" {
		path = filepath.Join(cfg.DataDir, "config.yaml")
	}
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile overlays the YAML file at path onto c. Keys absent from the file
// keep their current values.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ENVIOSCAN_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("ENVIOSCAN_LOG_FILE"); v != "" {
		c.Log.Path = v
	}
	if v := os.Getenv("ENVIOSCAN_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ENVIOSCAN_LOG_STDERR"); v != "" {
		c.Log.Stderr, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("ENVIOSCAN_CHROME_PATH"); v != "" {
		c.Chrome.ExecPath = v
	}
	if v := os.Getenv("ENVIOSCAN_CHROME_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Chrome.TimeoutMs = n
		}
	}
	if v := os.Getenv("ENVIOSCAN_S3_ENDPOINT"); v != "" {
		c.Storage.Endpoint = v
	}
	if v := os.Getenv("ENVIOSCAN_S3_ACCESS_KEY"); v != "" {
		c.Storage.AccessKey = v
	}
	if v := os.Getenv("ENVIOSCAN_S3_SECRET_KEY"); v != "" {
		c.Storage.SecretKey = v
	}
	if v := os.Getenv("ENVIOSCAN_S3_REGION"); v != "" {
		c.Storage.Region = v
	}
	if v := os.Getenv("ENVIOSCAN_S3_BUCKET"); v != "" {
		c.Storage.Bucket = v
	}
	if v := os.Getenv("ENVIOSCAN_S3_USE_SSL"); v != "" {
		c.Storage.UseSSL, _ = strconv.ParseBool(v)
	}

	llm.ApplyEnv(&c.LLM)
}

var validate = validator.New()

// Validate checks field constraints and reports the first few violations.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("invalid config: %s", describe(verrs))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func describe(verrs validator.ValidationErrors) string {
	msg := ""
	for i, fe := range verrs {
		if i > 0 {
			msg += "; "
		}
		msg += fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			msg += " (" + fe.Param() + ")"
		}
	}
	return msg
}
