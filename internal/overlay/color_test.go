package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskColor(t *testing.T) {
	assert.Equal(t, RGB{0, 255, 0}, RiskColor(RiskNever))
	assert.Equal(t, RGB{255, 255, 0}, RiskColor(RiskNightOnly))
	assert.Equal(t, RGB{255, 0, 0}, RiskColor(RiskAlways))
}

func TestLightLevelColor(t *testing.T) {
	assert.Equal(t, RGB{255, 0, 0}, LightLevelColor(0), "нулевой свет — красный")
	assert.Equal(t, RGB{255, 191, 0}, LightLevelColor(7))
	assert.Equal(t, RGB{128, 255, 0}, LightLevelColor(14), "максимум — четверть круга тона")

	for l := uint8(0); l <= 15; l++ {
		assert.Equal(t, LightLevelColor(l), LightLevelColor(l), "цвет должен быть детерминирован")
	}
}

func TestColorFor(t *testing.T) {
	_, ok := ColorFor(ModeSpawnable, RiskNever, 12)
	assert.False(t, ok, "в режиме spawnable безопасные точки скрыты")

	c, ok := ColorFor(ModeSpawnable, RiskAlways, 0)
	assert.True(t, ok)
	assert.Equal(t, ColorRed, c)

	c, ok = ColorFor(ModeAll, RiskNever, 12)
	assert.True(t, ok)
	assert.Equal(t, ColorGreen, c)

	c, ok = ColorFor(ModeLightLevel, RiskNever, 7)
	assert.True(t, ok)
	assert.Equal(t, LightLevelColor(7), c)

	_, ok = ColorFor(Mode(42), RiskAlways, 0)
	assert.False(t, ok)
}

func TestRGBString(t *testing.T) {
	assert.Equal(t, "#ff00ff", RGB{255, 0, 255}.String())
}
