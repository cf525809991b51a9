package logging

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Логгеры компонентов пишут туда же, куда глобальный логгер, но со своим префиксом.
// Кэш сбрасывается при InitDefaultLogger, чтобы компоненты подхватили новый вывод.
var components = struct {
	sync.Mutex
	loggers map[string]*Logger
}{loggers: make(map[string]*Logger)}

// Component возвращает логгер компонента, создавая его при первом обращении
func Component(name string) *Logger {
	base := Default()

	components.Lock()
	defer components.Unlock()

	if l, ok := components.loggers[name]; ok {
		return l
	}

	l := &Logger{component: name, console: base.console.WithPrefix(name)}
	if base.file != nil {
		l.file = base.file.WithPrefix(name)
	}
	components.loggers[name] = l
	return l
}

// ComponentNames возвращает отсортированный список созданных логгеров компонентов
func ComponentNames() []string {
	components.Lock()
	defer components.Unlock()
	return slices.Sorted(maps.Keys(components.loggers))
}

// SetComponentLevel меняет уровень консольного вывода компонента, например "debug"
func SetComponentLevel(name, level string) error {
	parsed, err := ParseLevel(level)
	if err != nil {
		return err
	}

	components.Lock()
	l, ok := components.loggers[name]
	components.Unlock()
	if !ok {
		return fmt.Errorf("логгер компонента %q не создан", name)
	}

	l.SetLevel(parsed)
	return nil
}

func resetComponents() {
	components.Lock()
	clear(components.loggers)
	components.Unlock()
}

func GetNetworkLogger() *Logger { return Component("network") }

func GetStorageLogger() *Logger { return Component("storage") }
