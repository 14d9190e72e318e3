package logging

import (
	"context"

	"github.com/goliatone/go-storefront/pkg/interfaces"
)

type noopLogger struct{}

// NoOp returns a logger that discards every entry. It is the default used
// when no provider has been configured.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (l noopLogger) WithContext(context.Context) interfaces.Logger { return l }

type noopProvider struct{}

// NoOpProvider returns a provider whose loggers discard everything.
func NoOpProvider() interfaces.LoggerProvider {
	return noopProvider{}
}

func (noopProvider) GetLogger(string) interfaces.Logger { return NoOp() }
