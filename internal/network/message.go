package network

import (
	"encoding/json"
	"fmt"
)

// Типы клиентских команд
const (
	MsgHello  = "hello"  // {observer}: первая команда соединения
	MsgMove   = "move"   // {x, y, z}: новая позиция наблюдателя
	MsgShow   = "show"   // включить оверлей
	MsgHide   = "hide"   // выключить оверлей
	MsgToggle = "toggle" // переключить оверлей
	MsgMode   = "mode"   // {mode}: задать режим
	MsgCycle  = "cycle"  // следующий режим по кругу
)

// Типы ответов сервера
const (
	MsgState = "state"
	MsgError = "error"
)

// ClientMessage команда клиента (JSON текстовый фрейм)
type ClientMessage struct {
	Type     string  `json:"type"`
	Observer string  `json:"observer,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Z        float64 `json:"z,omitempty"`
	Mode     string  `json:"mode,omitempty"`
}

// ServerMessage ответ сервера (JSON текстовый фрейм).
// Кадры оверлея идут отдельными бинарными фреймами.
type ServerMessage struct {
	Type     string `json:"type"`
	Observer string `json:"observer,omitempty"`
	Enabled  bool   `json:"enabled"`
	Mode     string `json:"mode,omitempty"`
	Previous *bool  `json:"previous,omitempty"` // только в ответ на toggle
	Error    string `json:"error,omitempty"`
}

// ParseClientMessage декодирует команду клиента
func ParseClientMessage(data []byte) (*ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("некорректное сообщение: %w", err)
	}
	if msg.Type == "" {
		return nil, fmt.Errorf("не указан тип сообщения")
	}
	return &msg, nil
}

func errorMessage(format string, args ...interface{}) *ServerMessage {
	return &ServerMessage{Type: MsgError, Error: fmt.Sprintf(format, args...)}
}
