package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/wippyai/copybook"
	"github.com/wippyai/copybook/schema"
	"github.com/wippyai/copybook/sink/sqlite"
	"github.com/wippyai/copybook/transcoder"
)

// common carries the flags every subcommand accepts.
type common struct {
	flags      *pflag.FlagSet
	schemaPath string
	charset    string
	configPath string
	logLevel   string
	trim       bool
	cfg        Config
}

func newCommon(name string) *common {
	c := &common{flags: pflag.NewFlagSet(name, pflag.ContinueOnError)}
	c.flags.StringVarP(&c.schemaPath, "schema", "s", "", "schema file (.yaml, .yml, .json, .jsonc)")
	c.flags.StringVar(&c.charset, "charset", "ascii", "display field charset: ascii, latin1, cp037, cp1047")
	c.flags.StringVar(&c.configPath, "config", "", "YAML file with default flag values")
	c.flags.StringVar(&c.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	c.flags.BoolVar(&c.trim, "trim", false, "trim trailing spaces from decoded text fields")
	return c
}

func (c *common) parse(args []string, e *env) error {
	c.flags.SetOutput(e.stderr)
	if err := c.flags.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if !c.flags.Changed("charset") && cfg.Charset != "" {
		c.charset = cfg.Charset
	}
	if !c.flags.Changed("log-level") && cfg.LogLevel != "" {
		c.logLevel = cfg.LogLevel
	}
	if !c.flags.Changed("trim") && cfg.Trim != nil {
		c.trim = *cfg.Trim
	}
	return nil
}

// job is the state a subcommand works with once flags are resolved.
type job struct {
	schema  *copybook.Schema
	plan    *transcoder.Plan
	decoder *transcoder.Decoder
	encoder *transcoder.Encoder
	log     *zap.Logger
}

func (c *common) setup(e *env) (*job, error) {
	log, err := newLogger(c.logLevel, e.stderr)
	if err != nil {
		return nil, err
	}
	transcoder.SetLogger(log)
	sqlite.SetLogger(log)

	if c.schemaPath == "" {
		return nil, fmt.Errorf("--schema is required")
	}
	s, err := schema.LoadFile(c.schemaPath)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	cs, err := transcoder.LookupCharset(c.charset)
	if err != nil {
		return nil, err
	}

	compiler := transcoder.NewCompiler()
	plan, err := compiler.Compile(s)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	if plan.BinaryOnly() && c.flags.Changed("charset") {
		log.Warn("charset has no effect on a record without display fields",
			zap.String("schema", s.Name),
			zap.String("charset", cs.Name()))
	}

	opts := transcoder.DefaultOptions()
	opts.Charset = cs
	opts.TrimText = c.trim

	log.Debug("schema loaded",
		zap.String("path", c.schemaPath),
		zap.String("schema", s.Name),
		zap.Int("record_size", plan.Size()),
		zap.String("charset", cs.Name()))

	return &job{
		schema:  s,
		plan:    plan,
		decoder: transcoder.NewDecoderWithOptions(compiler, opts),
		encoder: transcoder.NewEncoderWithOptions(compiler, opts),
		log:     log,
	}, nil
}

// input returns the single positional argument, "-" when absent.
func (c *common) input() (string, error) {
	switch c.flags.NArg() {
	case 0:
		return "-", nil
	case 1:
		return c.flags.Arg(0), nil
	default:
		return "", fmt.Errorf("expected one input, got %d", c.flags.NArg())
	}
}
