// Package errlog provides the bounded in-memory error log, its console
// mirror, and the external reporting sink.
package errlog

import (
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quizdesk/quizdesk/internal/apperr"
)

// Level is a log level, ordered from most to least severe.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	}
	return "unknown"
}

// ParseLevel maps a config string onto a Level. Unknown strings fall back
// to error, the quietest setting.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	default:
		return LevelError
	}
}

// Entry is a single log record.
type Entry struct {
	ID        string
	Level     Level
	Message   string
	Err       *apperr.Error
	Context   *apperr.Context
	Timestamp time.Time
	Stack     string
}

// Sink receives serialized error entries for external reporting.
type Sink interface {
	Report(e Entry)
}

// Config controls logger behavior.
type Config struct {
	EnableLogging   bool  // mirror entries to the console
	EnableReporting bool  // forward error-level entries to the sink
	Level           Level // minimum level retained
}

// maxEntries bounds the ring; the oldest entry is evicted past this.
const maxEntries = 1000

// Logger is a bounded ring of log entries with console mirroring and an
// optional external sink. Safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	cfg     Config
	entries []Entry
	console *log.Logger
	sink    Sink
}

// New creates a Logger mirroring to stderr.
func New(cfg Config) *Logger {
	return &Logger{
		cfg:     cfg,
		console: log.New(os.Stderr, "", 0),
	}
}

// SetSink installs the external reporting sink.
func (l *Logger) SetSink(s Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink = s
}

// SetConfig replaces the logger configuration.
func (l *Logger) SetConfig(cfg Config) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg = cfg
}

// Log records an entry at the given level. Entries below the configured
// level are dropped. Error-level entries are forwarded to the sink when
// reporting is enabled.
func (l *Logger) Log(level Level, message string, err *apperr.Error, ctx *apperr.Context) {
	l.mu.Lock()

	if level > l.cfg.Level {
		l.mu.Unlock()
		return
	}

	entry := Entry{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		Err:       err,
		Context:   ctx,
		Timestamp: time.Now(),
	}
	if err != nil {
		entry.Stack = err.Stack
	}

	l.entries = append(l.entries, entry)
	if len(l.entries) > maxEntries {
		l.entries = l.entries[len(l.entries)-maxEntries:]
	}

	mirror := l.cfg.EnableLogging
	report := l.cfg.EnableReporting && level == LevelError
	sink := l.sink
	l.mu.Unlock()

	if mirror {
		l.mirror(entry)
	}
	if report && sink != nil {
		sink.Report(entry)
	}
}

func (l *Logger) Error(message string, err *apperr.Error) {
	var ctx *apperr.Context
	if err != nil {
		ctx = &err.Context
	}
	l.Log(LevelError, message, err, ctx)
}

func (l *Logger) Warn(message string)  { l.Log(LevelWarn, message, nil, nil) }
func (l *Logger) Info(message string)  { l.Log(LevelInfo, message, nil, nil) }
func (l *Logger) Debug(message string) { l.Log(LevelDebug, message, nil, nil) }

// Entries returns a copy of the retained log entries, oldest first.
func (l *Logger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// EntriesByLevel returns retained entries at exactly the given level.
func (l *Logger) EntriesByLevel(level Level) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Entry
	for _, e := range l.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Reset discards all retained entries. Intended for test isolation.
func (l *Logger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

func (l *Logger) mirror(e Entry) {
	msg := "[" + e.Timestamp.Format(time.RFC3339) + "] " + strings.ToUpper(e.Level.String()) + ": " + e.Message
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}
	l.console.Println(msg)
}

// TopError is a recurring error aggregated by (type, message).
type TopError struct {
	Key            string
	Count          int
	LastOccurrence time.Time
	Sample         *apperr.Error
}

// Metrics summarizes retained error-level entries.
type Metrics struct {
	TotalErrors int
	ByType      map[apperr.Type]int
	BySeverity  map[apperr.Severity]int
	TopErrors   []TopError
}

// topErrorLimit caps the TopErrors list.
const topErrorLimit = 10

// Metrics computes counters over the retained error entries.
func (l *Logger) Metrics() Metrics {
	l.mu.Lock()
	defer l.mu.Unlock()

	m := Metrics{
		ByType:     make(map[apperr.Type]int, len(apperr.Types)),
		BySeverity: make(map[apperr.Severity]int, len(apperr.Severities)),
	}
	for _, t := range apperr.Types {
		m.ByType[t] = 0
	}
	for _, s := range apperr.Severities {
		m.BySeverity[s] = 0
	}

	counts := make(map[string]*TopError)
	for _, e := range l.entries {
		if e.Level != LevelError || e.Err == nil {
			continue
		}
		m.TotalErrors++
		m.ByType[e.Err.Type]++
		m.BySeverity[e.Err.Severity]++

		key := e.Err.Key()
		if top, ok := counts[key]; ok {
			top.Count++
			if e.Err.Timestamp.After(top.LastOccurrence) {
				top.LastOccurrence = e.Err.Timestamp
			}
		} else {
			counts[key] = &TopError{
				Key:            key,
				Count:          1,
				LastOccurrence: e.Err.Timestamp,
				Sample:         e.Err,
			}
		}
	}

	for _, top := range counts {
		m.TopErrors = append(m.TopErrors, *top)
	}
	sort.Slice(m.TopErrors, func(i, j int) bool {
		if m.TopErrors[i].Count != m.TopErrors[j].Count {
			return m.TopErrors[i].Count > m.TopErrors[j].Count
		}
		return m.TopErrors[i].Key < m.TopErrors[j].Key
	})
	if len(m.TopErrors) > topErrorLimit {
		m.TopErrors = m.TopErrors[:topErrorLimit]
	}

	return m
}
