// SPDX-License-Identifier: MIT

// Package log configures apex/log for the invcache binary.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/apex/log"
)

// EnvLevel names the environment variable holding the log level.
const EnvLevel = "INVCACHE_LOG"

const defaultLevel = log.ErrorLevel

// InitLogger installs a Handler writing to stderr on the package-level apex
// logger and sets its level from INVCACHE_LOG (ERROR when unset or invalid).
func InitLogger() {
	InitLoggerTo(os.Stderr)
}

// InitLoggerTo is InitLogger with an explicit destination.
func InitLoggerTo(w io.Writer) {
	log.SetHandler(NewHandler(w))
	if l, ok := log.Log.(*log.Logger); ok {
		l.Level = LevelFromEnv()
	}
}

// LevelFromEnv parses INVCACHE_LOG case-insensitively.
func LevelFromEnv() log.Level {
	s := strings.TrimSpace(os.Getenv(EnvLevel))
	if s == "" {
		return defaultLevel
	}
	lvl, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return defaultLevel
	}

	return lvl
}

// Handler prints one line per entry: "timestamp L message key=value ...".
// Fields are printed in name order.
type Handler struct {
	mu sync.Mutex
	w  io.Writer
}

// NewHandler returns a Handler writing to w.
func NewHandler(w io.Writer) *Handler {
	return &Handler{w: w}
}

// HandleLog implements log.Handler.
func (h *Handler) HandleLog(e *log.Entry) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %.1s %s",
		e.Timestamp.Format("2006-01-02 15:04:05"),
		strings.ToUpper(e.Level.String()),
		e.Message)
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())

	return err
}
