package overlay

import (
	"fmt"
	"strings"
)

// Mode способ отображения оверлея
type Mode uint8

const (
	// ModeSpawnable показывает только позиции, где моб может появиться
	ModeSpawnable Mode = iota
	// ModeAll показывает все валидные поверхности с их категорией
	ModeAll
	// ModeLightLevel окрашивает поверхности градиентом по свету от блоков
	ModeLightLevel

	modeCount // всегда последний
)

var modeNames = [...]string{
	ModeSpawnable:  "spawnable",
	ModeAll:        "all",
	ModeLightLevel: "light_level",
}

func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// Valid проверяет, что значение входит в перечисление
func (m Mode) Valid() bool {
	return m < modeCount
}

// Next возвращает следующий режим по кругу
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

// ParseMode разбирает имя режима ("spawnable", "all", "light_level").
// Регистр и разделители "-"/"_" не важны.
func ParseMode(s string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	for i, name := range modeNames {
		if key == strings.ReplaceAll(name, "_", "") {
			return Mode(i), nil
		}
	}
	return ModeSpawnable, fmt.Errorf("неизвестный режим отображения: %q", s)
}

// MarshalText реализует encoding.TextMarshaler (YAML/JSON)
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("недопустимый режим: %d", uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler (YAML/JSON)
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
