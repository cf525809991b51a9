package block

// Metadata хранит состояние конкретного блока (ориентация ступеней, тип плиты, слои снега).
// После загрузки из JSON числа приходят как float64, поэтому читаем через Int.
type Metadata map[string]interface{}

// Int возвращает целое значение по ключу или def
func (m Metadata) Int(key string, def int) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// String возвращает строковое значение по ключу или def
func (m Metadata) String(key, def string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return def
}

// Clone создаёт копию метаданных
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// BlockBehavior определяет свойства типа блока, которые нужны миру и оверлею спавна
type BlockBehavior interface {
	ID() BlockID
	Name() string
	// Passable можно ли пройти сквозь блок (нет коллизии)
	Passable(meta Metadata) bool
	// SpawnValue пригодность материала как поверхности для спавна
	SpawnValue() SpawnValue
	// Shape описывает форму блока по его состоянию
	Shape(meta Metadata) Shape
	// Opaque блокирует ли блок распространение света
	Opaque() bool
	// LightEmission собственный уровень света блока (0..15)
	LightEmission() uint8
	CreateMetadata() Metadata
}
