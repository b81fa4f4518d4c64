// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	CompressionNone    = "none"
	CompressionDeflate = "deflate"

	ValidationRelaxed = "relaxed"
	ValidationStrict  = "strict"
)

type Config struct {
	Output struct {
		Compression string `yaml:"compression"`
		Predictor   bool   `yaml:"predictor"`
		Verify      bool   `yaml:"verify"`
	} `yaml:"output"`
	Batch struct {
		InputDir   string   `yaml:"input_dir"`
		OutputDir  string   `yaml:"output_dir"`
		Extensions []string `yaml:"extensions"`
	} `yaml:"batch"`
	PDF struct {
		Validation string `yaml:"validation"`
	} `yaml:"pdf"`
	Logging struct {
		Verbose bool `yaml:"verbose"`
		Debug   bool `yaml:"debug"`
	} `yaml:"logging"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	c.Output.Compression = strings.ToLower(c.Output.Compression)
	if c.Output.Compression == "" {
		c.Output.Compression = CompressionNone
	}
	if c.Batch.InputDir == "" {
		c.Batch.InputDir = "./output"
	}
	if c.Batch.OutputDir == "" {
		c.Batch.OutputDir = "./split_output"
	}
	if len(c.Batch.Extensions) == 0 {
		c.Batch.Extensions = []string{".tif", ".tiff", ".pdf"}
	}
	for i, ext := range c.Batch.Extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Batch.Extensions[i] = ext
	}
	c.PDF.Validation = strings.ToLower(c.PDF.Validation)
	if c.PDF.Validation == "" {
		c.PDF.Validation = ValidationRelaxed
	}
}

func (c *Config) Validate() error {
	switch c.Output.Compression {
	case CompressionNone, CompressionDeflate:
	default:
		return fmt.Errorf("unsupported output compression %q", c.Output.Compression)
	}
	switch c.PDF.Validation {
	case ValidationRelaxed, ValidationStrict:
	default:
		return fmt.Errorf("unsupported pdf validation mode %q", c.PDF.Validation)
	}
	return nil
}
