package sink

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"benchmark-observer/src/helpers"
	"benchmark-observer/src/models"
)

const (
	// PrefixLayout is the YYYYMMDDHHMM run prefix shared by all log files.
	PrefixLayout = "200601021504"
	lineLayout   = "2006-01-02 15:04:05,000"
)

// -----------------------------------------------------------------------------

// LogPrefix formats t (in UTC) as a run prefix.
func LogPrefix(t time.Time) string {
	return t.UTC().Format(PrefixLayout)
}

// -----------------------------------------------------------------------------
// FileLog - one append-only log file
// -----------------------------------------------------------------------------

type FileLog struct {
	name models.MLogName
	path string
	now  func() time.Time

	mu   sync.Mutex
	file *os.File
}

// -----------------------------------------------------------------------------

func openFileLog(dir, prefix string, name models.MLogName) (*FileLog, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s_%s", prefix, name))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, helpers.NewWriteFailure(fmt.Sprintf("failed to open log '%s'", path), err)
	}
	return &FileLog{name: name, path: path, now: time.Now, file: f}, nil
}

// -----------------------------------------------------------------------------

func (l *FileLog) Path() string {
	return l.path
}

// -----------------------------------------------------------------------------

// Append writes "<timestamp> <json record>" as a single line.
func (l *FileLog) Append(record interface{}) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return helpers.NewWriteFailure(fmt.Sprintf("failed to encode record for %s", l.name), err)
	}

	line := make([]byte, 0, len(payload)+len(lineLayout)+2)
	line = l.now().AppendFormat(line, lineLayout)
	line = append(line, ' ')
	line = append(line, payload...)
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return helpers.NewWriteFailure(fmt.Sprintf("log %s is closed", l.name), os.ErrClosed)
	}
	if _, err := l.file.Write(line); err != nil {
		return helpers.NewWriteFailure(fmt.Sprintf("failed to append to %s", l.path), err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (l *FileLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// -----------------------------------------------------------------------------
// FileSink - the four per-run logs
// -----------------------------------------------------------------------------

type FileSink struct {
	prefix string
	logs   map[models.MLogName]*FileLog
}

// -----------------------------------------------------------------------------

// NewFileSink opens (creating if needed) <dir>/<prefix>_<name> for every log.
func NewFileSink(dir, prefix string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, helpers.NewWriteFailure(fmt.Sprintf("failed to create log dir '%s'", dir), err)
	}

	s := &FileSink{
		prefix: prefix,
		logs:   make(map[models.MLogName]*FileLog, len(models.AllLogNames)),
	}
	for _, name := range models.AllLogNames {
		l, err := openFileLog(dir, prefix, name)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.logs[name] = l
	}
	return s, nil
}

// -----------------------------------------------------------------------------

func (s *FileSink) Append(name models.MLogName, record models.MTrafficLogRecord) error {
	l, ok := s.logs[name]
	if !ok {
		return helpers.NewWriteFailure(fmt.Sprintf("unknown log %q", name), nil)
	}
	return l.Append(record)
}

// -----------------------------------------------------------------------------

func (s *FileSink) Prefix() string {
	return s.prefix
}

// -----------------------------------------------------------------------------

// Path returns the file backing name, or "" for an unknown log.
func (s *FileSink) Path(name models.MLogName) string {
	if l, ok := s.logs[name]; ok {
		return l.Path()
	}
	return ""
}

// -----------------------------------------------------------------------------

func (s *FileSink) Close() error {
	var firstErr error
	for _, l := range s.logs {
		if err := l.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
