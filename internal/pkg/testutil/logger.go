package testutil

import (
	"strings"
	"testing"

	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/logger"
)

type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// SetupTestLogger returns a debug-level logger whose records go to t.Log,
// so they only show up for failing tests or with -v.
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	return logger.NewWriterLogger(config.LogLevelDebug, testWriter{t: t})
}
