// Package banklog appends a human-readable, timestamped record of every
// balance-affecting event to a process-lifetime-open file, independent of the
// primary store. The log is best-effort durability for forensic recovery, not
// a commit gate: a write failure never rolls back the ledger mutation.
package banklog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sbplanet/currencybank/internal/bank"
	"github.com/sbplanet/currencybank/internal/errs"
)

const timestampLayout = "2006-01-02 15:04:05"

var writesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "currencybank",
		Name:      "banklog_writes_total",
		Help:      "Total number of audit log writes by outcome",
	},
	[]string{"outcome"},
)

// LogName returns the per-process file name, e.g.
// BankLog_2014-07-20_18-35-02.log.
func LogName(t time.Time) string {
	return "BankLog_" + t.Format("2006-01-02_15-04-05") + ".log"
}

// Log is the serialized append-only audit writer. One instance lives per
// process; the file handle stays open until shutdown.
type Log struct {
	mu     sync.Mutex
	file   *os.File
	format bank.Formatter
	now    func() time.Time
}

// Open creates parent directories if absent and opens the target file for
// append-only writing. External readers may hold the file concurrently.
func Open(path string, format bank.Formatter) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &Log{file: file, format: format, now: time.Now}, nil
}

// Close releases the file handle.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

// Write appends one line: the current timestamp, the message, and a trailing
// period if the message does not already end in one. All writers serialize
// through one lock so concurrent callers never interleave partial lines, and
// every write is flushed to durable storage before the lock is released.
func (l *Log) Write(text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := l.now().Format(timestampLayout) + " - " + text
	if line[len(line)-1] != '.' {
		line += "."
	}
	if _, err := l.file.WriteString(line + "\n"); err != nil {
		writesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("write audit line: %w: %v", errs.ErrLogWrite, err)
	}
	if err := l.file.Sync(); err != nil {
		writesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("sync audit log: %w: %v", errs.ErrLogWrite, err)
	}
	writesTotal.WithLabelValues("ok").Inc()
	return nil
}

// Writef appends a formatted line.
func (l *Log) Writef(format string, args ...any) error {
	return l.Write(fmt.Sprintf(format, args...))
}

// Gain records an account receiving currency, optionally with a free-text
// message.
func (l *Log) Gain(account bank.Account, amount int64, message string) error {
	return l.Writef("%s received %s%s", account.Name, l.format.Money(amount), withMessage(message))
}

// Loss records an account losing currency.
func (l *Log) Loss(account bank.Account, amount int64, message string) error {
	return l.Writef("%s lost %s%s", account.Name, l.format.Money(amount), withMessage(message))
}

// Payment records a transfer between two accounts.
func (l *Log) Payment(sender, receiver bank.Account, amount int64, message string) error {
	return l.Writef("%s paid %s to %s%s", sender.Name, l.format.Money(amount), receiver.Name, withMessage(message))
}

func withMessage(message string) string {
	if message == "" {
		return ""
	}
	return " with the message \"" + message + "\""
}
