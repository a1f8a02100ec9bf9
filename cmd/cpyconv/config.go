package main

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds defaults read from a --config file. Flags given on the
// command line win over the file.
type Config struct {
	Charset  string `yaml:"charset"`
	Format   string `yaml:"format"`
	LogLevel string `yaml:"log_level"`
	Trim     *bool  `yaml:"trim"`
	Workers  int    `yaml:"workers"`
	Batch    int    `yaml:"batch"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
