package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// LogLevel определяет уровни логирования
type LogLevel = log.Level

const (
	DEBUG = log.DebugLevel
	INFO  = log.InfoLevel
	WARN  = log.WarnLevel
	ERROR = log.ErrorLevel
)

// Options настраивает логгер
type Options struct {
	Level string // debug|info|warn|error, по умолчанию info
	File  string // путь к файлу логов; если пусто, пишем только в консоль
}

// Logger пишет в консоль (цветной текст) и, при наличии, в файл (logfmt)
type Logger struct {
	component string
	console   *log.Logger
	file      *log.Logger
	f         *os.File
}

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

// ParseLevel разбирает строковый уровень логирования
func ParseLevel(s string) (LogLevel, error) {
	if strings.TrimSpace(s) == "" {
		return INFO, nil
	}
	level, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return INFO, fmt.Errorf("неизвестный уровень логирования %q: %w", s, err)
	}
	return level, nil
}

// NewLogger создаёт логгер компонента
func NewLogger(component string, opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	l := &Logger{
		component: component,
		console:   newConsoleLogger(os.Stdout, component, level),
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, fmt.Errorf("ошибка создания директории логов: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("ошибка создания файла логов: %w", err)
		}
		l.f = f
		// В файл пишем всё, начиная с DEBUG
		l.file = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Level:           DEBUG,
			Prefix:          component,
			Formatter:       log.LogfmtFormatter,
		})
	}

	return l, nil
}

// NewWriterLogger создаёт логгер поверх произвольного writer (тесты, CLI)
func NewWriterLogger(w io.Writer, component string, level LogLevel) *Logger {
	return &Logger{component: component, console: newConsoleLogger(w, component, level)}
}

func newConsoleLogger(w io.Writer, component string, level LogLevel) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          component,
	})
}

// Component возвращает имя компонента
func (l *Logger) Component() string {
	return l.component
}

// SetLevel меняет уровень консольного вывода
func (l *Logger) SetLevel(level LogLevel) {
	l.console.SetLevel(level)
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	l.file = nil
	return err
}

func (l *Logger) logf(level LogLevel, format string, args ...interface{}) {
	l.console.Logf(level, format, args...)
	if l.file != nil {
		l.file.Logf(level, format, args...)
	}
}

// Debug логирует сообщение уровня DEBUG
func (l *Logger) Debug(format string, args ...interface{}) { l.logf(DEBUG, format, args...) }

// Info логирует сообщение уровня INFO
func (l *Logger) Info(format string, args ...interface{}) { l.logf(INFO, format, args...) }

// Warn логирует сообщение уровня WARN
func (l *Logger) Warn(format string, args ...interface{}) { l.logf(WARN, format, args...) }

// Error логирует сообщение уровня ERROR
func (l *Logger) Error(format string, args ...interface{}) { l.logf(ERROR, format, args...) }

// InitDefaultLogger инициализирует глобальный логгер
func InitDefaultLogger(component string, opts Options) error {
	l, err := NewLogger(component, opts)
	if err != nil {
		return err
	}

	defaultMu.Lock()
	previous := defaultLogger
	defaultLogger = l
	defaultMu.Unlock()

	resetComponents()
	if previous != nil {
		_ = previous.Close()
	}
	return nil
}

// CloseDefaultLogger закрывает глобальный логгер
func CloseDefaultLogger() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger != nil {
		_ = defaultLogger.Close()
	}
}

// Default возвращает глобальный логгер; до InitDefaultLogger используется консольный INFO
func Default() *Logger {
	defaultMu.RLock()
	l := defaultLogger
	defaultMu.RUnlock()
	if l != nil {
		return l
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewWriterLogger(os.Stderr, "", INFO)
	}
	return defaultLogger
}

// Debug логирует сообщение уровня DEBUG в глобальный логгер
func Debug(format string, args ...interface{}) { Default().Debug(format, args...) }

// Info логирует сообщение уровня INFO в глобальный логгер
func Info(format string, args ...interface{}) { Default().Info(format, args...) }

// Warn логирует сообщение уровня WARN в глобальный логгер
func Warn(format string, args ...interface{}) { Default().Warn(format, args...) }

// Error логирует сообщение уровня ERROR в глобальный логгер
func Error(format string, args ...interface{}) { Default().Error(format, args...) }
