package shell

import (
	"bytes"
	"strings"
	"sync"

	"go.trai.ch/dexopt/internal/core/ports"
)

// LogWriter forwards written output to a logger one line at a time.
type LogWriter struct {
	logger ports.Logger
	prefix string
	mu     sync.Mutex
	buf    []byte
}

// NewLogWriter returns a LogWriter that prefixes every line with prefix.
func NewLogWriter(logger ports.Logger, prefix string) *LogWriter {
	return &LogWriter{logger: logger, prefix: prefix}
}

// Write buffers p and logs every complete line.
func (w *LogWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

// Close logs any trailing partial line.
func (w *LogWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *LogWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if msg == "" {
		return
	}
	w.logger.Info(w.prefix + msg)
}
