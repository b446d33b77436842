package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/hilthontt/huddle/internal/infrastructure/env"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger interface {
	Init()

	Debug(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Debugf(template string, args ...any)

	Info(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Infof(template string, args ...any)

	Warn(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Warnf(template string, args ...any)

	Error(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Errorf(template string, args ...any)

	Fatal(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Fatalf(template string, args ...any)

	Sync() error
}

type LoggerConfig struct {
	AppName  string
	FilePath string
	FileName string
	Encoding string
	Level    string
	Logger   string
	Console  bool
}

func NewDefaultConfig(appName string) *LoggerConfig {
	return &LoggerConfig{
		AppName:  appName,
		FilePath: env.GetString("LOGGER_FILE_PATH", "./logs/"),
		FileName: appName + ".log",
		Encoding: env.GetString("LOGGER_ENCODING", "json"),
		Level:    env.GetString("LOGGER_LEVEL", "debug"),
		Logger:   env.GetString("LOGGER_LOGGER", "zap"),
		Console:  env.GetBool("LOGGER_CONSOLE", true),
	}
}

func NewLogger(cfg *LoggerConfig) Logger {
	var l Logger
	switch cfg.Logger {
	case "zap":
		l = newZapLogger(cfg)
	case "zerolog":
		l = newZeroLogger(cfg)
	default:
		panic("logger not supported: supported loggers: [zap, zerolog]")
	}

	l.Init()
	return l
}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	l := newZapLogger(&LoggerConfig{Level: "fatal"})
	l.nop = true
	l.Init()
	return l
}

// writers builds the sinks a logger writes to: a rotated file when a path is
// configured, stdout when Console is set.
func (cfg *LoggerConfig) writers() []io.Writer {
	var out []io.Writer

	if cfg.FilePath != "" {
		name := cfg.FileName
		if name == "" {
			name = "app.log"
		}
		out = append(out, &lumberjack.Logger{
			Filename:   filepath.Join(cfg.FilePath, name),
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	if cfg.Console {
		out = append(out, os.Stdout)
	}

	if len(out) == 0 {
		out = append(out, io.Discard)
	}

	return out
}
