package accounts

import (
	"fmt"
	"time"
)

// Logger is the minimal structured logging surface the package needs.
// Arguments follow the slog convention of alternating keys and values.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config holds service options
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() time.Duration
	GetContextKey() string
	GetAuthScheme() string
	GetHTTPAddr() string
	GetDatabaseDSN() string
}

type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) {
	fmt.Println(append([]any{"[ERR] ACCOUNTS", msg}, args...)...)
}

func (d defLogger) Warn(msg string, args ...any) {
	fmt.Println(append([]any{"[WRN] ACCOUNTS", msg}, args...)...)
}

func (d defLogger) Info(msg string, args ...any) {
	fmt.Println(append([]any{"[INF] ACCOUNTS", msg}, args...)...)
}

func (d defLogger) Debug(msg string, args ...any) {
	fmt.Println(append([]any{"[DBG] ACCOUNTS", msg}, args...)...)
}
