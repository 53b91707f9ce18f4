package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// BaseURL is the store WebObjects root all page URLs are built from.
	BaseURL        string `json:"base_url"        yaml:"base_url"`
	AcceptLanguage string `json:"accept_language" yaml:"accept_language"`
	// DumpDir receives decoded documents and extraction failure reports
	// when Debug is set. Empty means the OS temp directory.
	DumpDir string `json:"dump_dir" yaml:"dump_dir"`
	Debug   bool   `json:"debug"    yaml:"debug"`
}

func Default() *Config {
	return &Config{
		BaseURL:        "https://phobos.apple.com/WebObjects/MZStore.woa/wa",
		AcceptLanguage: "en-us, en;q=0.50",
		DumpDir:        "",
		Debug:          false,
	}
}

func (cfg *Config) validate() error {
	if cfg.BaseURL == "" {
		return errors.New("base URL is empty")
	}

	if strings.HasSuffix(cfg.BaseURL, "/") {
		return errors.New("base URL must not end with a slash")
	}

	if cfg.AcceptLanguage == "" {
		return errors.New("accept language is empty")
	}

	return nil
}

func FromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if nil != err {
		return nil, fmt.Errorf("failed to read config file %q: %v", filePath, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); nil != err {
		return nil, fmt.Errorf("failed to unmarshal config file %q: %v", filePath, err)
	}

	if err := cfg.validate(); nil != err {
		return nil, fmt.Errorf("validation failed: %v", err)
	}

	return cfg, nil
}

func FromString(data string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal([]byte(data), cfg); nil != err {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	if err := cfg.validate(); nil != err {
		return nil, fmt.Errorf("validation failed: %v", err)
	}

	return cfg, nil
}

// FromEnv builds a config from ITMS_* environment variables, loading a .env
// file first when one exists next to the process.
func FromEnv() (*Config, error) {
	if err := godotenv.Load(); nil != err && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %v", err)
	}

	cfg := Default()
	if v := os.Getenv("ITMS_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("ITMS_ACCEPT_LANGUAGE"); v != "" {
		cfg.AcceptLanguage = v
	}
	if v := os.Getenv("ITMS_DUMP_DIR"); v != "" {
		cfg.DumpDir = v
	}
	if v := os.Getenv("ITMS_DEBUG"); v == "1" || strings.EqualFold(v, "true") {
		cfg.Debug = true
	}

	if err := cfg.validate(); nil != err {
		return nil, fmt.Errorf("validation failed: %v", err)
	}

	return cfg, nil
}
