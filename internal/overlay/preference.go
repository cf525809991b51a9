package overlay

import (
	"context"

	"github.com/google/uuid"
)

// Preference сохраняемые настройки наблюдателя
type Preference struct {
	Mode    Mode `json:"mode"`
	Enabled bool `json:"enabled"`
}

// PreferenceStore сохраняет настройки между переподключениями
type PreferenceStore interface {
	// Load возвращает сохранённые настройки; false, если настроек нет
	Load(ctx context.Context, id uuid.UUID) (Preference, bool, error)
	Save(ctx context.Context, id uuid.UUID, pref Preference) error
}
