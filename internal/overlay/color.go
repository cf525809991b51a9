package overlay

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Цвета категорий
var (
	ColorGreen  = RGB{R: 0, G: 255, B: 0}
	ColorYellow = RGB{R: 255, G: 255, B: 0}
	ColorRed    = RGB{R: 255, G: 0, B: 0}
)

// lightLevelBase базовый цвет градиента режима ModeLightLevel
var lightLevelBase = colorful.Color{R: 1, G: 0, B: 6.0 / 255.0}

// Свет от блоков нормируется на 14, сдвиг тона не больше четверти круга
const (
	lightLevelScale = 14.0
	maxHueShift     = 0.25
)

// RiskColor возвращает цвет категории
func RiskColor(risk SpawnRisk) RGB {
	switch risk {
	case RiskNever:
		return ColorGreen
	case RiskNightOnly:
		return ColorYellow
	default:
		return ColorRed
	}
}

// LightLevelColor строит цвет градиента по свету от блоков.
// Насыщенность и яркость берутся от базового цвета, тон = 0.25 * L/14 оборота.
func LightLevelColor(blockLight uint8) RGB {
	p := float64(blockLight) / lightLevelScale
	_, s, v := lightLevelBase.Hsv()
	r, g, b := colorful.Hsv(360*maxHueShift*p, s, v).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// ColorFor выбирает цвет для режима. Возвращает false, если точку в этом режиме не показываем.
func ColorFor(mode Mode, risk SpawnRisk, blockLight uint8) (RGB, bool) {
	switch mode {
	case ModeSpawnable:
		if risk == RiskNever {
			return RGB{}, false
		}
		return RiskColor(risk), true
	case ModeAll:
		return RiskColor(risk), true
	case ModeLightLevel:
		return LightLevelColor(blockLight), true
	default:
		return RGB{}, false
	}
}
