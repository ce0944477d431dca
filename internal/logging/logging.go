package logging

import (
	"io"
	"log/slog"
	"os"
)

// SubSystem 日志来源模块
type SubSystem string

const (
	Splitter SubSystem = "splitter"
	Server   SubSystem = "server"
	Report   SubSystem = "report"
	CLI      SubSystem = "cli"
	Config   SubSystem = "config"
)

// Setup 设置默认 logger，文本格式输出到 w
func Setup(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})))
}

func setNoopLogger() {
	var logLevel slog.LevelVar
	// 高于所有常规级别
	logLevel.Set(slog.Level(100))

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: &logLevel,
	})))
}

// WithNoopLogger 在静默 logger 下执行 action，结束后恢复
func WithNoopLogger(action func()) {
	current := slog.Default()
	defer slog.SetDefault(current)

	setNoopLogger()
	action()
}

func Info(msg string, subSystem SubSystem, keyvals ...interface{}) {
	slog.Info(msg, withSubsystem(subSystem, keyvals)...)
}

func Warn(msg string, subSystem SubSystem, keyvals ...interface{}) {
	slog.Warn(msg, withSubsystem(subSystem, keyvals)...)
}

func Error(msg string, subSystem SubSystem, keyvals ...interface{}) {
	slog.Error(msg, withSubsystem(subSystem, keyvals)...)
}

func Debug(msg string, subSystem SubSystem, keyvals ...interface{}) {
	slog.Debug(msg, withSubsystem(subSystem, keyvals)...)
}

func withSubsystem(subSystem SubSystem, keyvals []interface{}) []interface{} {
	return append([]interface{}{"subsystem", subSystem}, keyvals...)
}
