package core

import (
	"go.uber.org/zap"
)

type Logger interface {
	// Log a message with a printf format for different log levels.
	Errorf(string, ...interface{})
	Warnf(string, ...interface{})
	Infof(string, ...interface{})
	Debugf(string, ...interface{})
	Tracef(string, ...interface{})

	// Return a new logger with the given `name` appended to this logger
	// current name.
	Extend(string) Logger
}

var globalLogger Logger = &noLogger{}

func SetLogger(logger Logger) {
	globalLogger = logger
}

func ExtendLogger(name string) Logger {
	return globalLogger.Extend(name)
}

type noLogger struct {
}

func NewNoLogger() Logger {
	return &noLogger{}
}

func (this *noLogger) Errorf(string, ...interface{}) {}
func (this *noLogger) Warnf(string, ...interface{})  {}
func (this *noLogger) Infof(string, ...interface{})  {}
func (this *noLogger) Debugf(string, ...interface{}) {}
func (this *noLogger) Tracef(string, ...interface{}) {}
func (this *noLogger) Extend(string) Logger          { return this }

// A logger printing through zap.
// Zap has no trace level: trace messages are emitted at debug level when
// `trace` is set and dropped otherwise.
type zapLogger struct {
	inner *zap.SugaredLogger
	trace bool
}

func NewZapLogger(logger *zap.Logger, trace bool) Logger {
	return &zapLogger{logger.Sugar(), trace}
}

func (this *zapLogger) Errorf(format string, args ...interface{}) {
	this.inner.Errorf(format, args...)
}

func (this *zapLogger) Warnf(format string, args ...interface{}) {
	this.inner.Warnf(format, args...)
}

func (this *zapLogger) Infof(format string, args ...interface{}) {
	this.inner.Infof(format, args...)
}

func (this *zapLogger) Debugf(format string, args ...interface{}) {
	this.inner.Debugf(format, args...)
}

func (this *zapLogger) Tracef(format string, args ...interface{}) {
	if this.trace {
		this.inner.Debugf(format, args...)
	}
}

func (this *zapLogger) Extend(name string) Logger {
	return &zapLogger{this.inner.Named(name), this.trace}
}
