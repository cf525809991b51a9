package overlay

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode_NextCycles(t *testing.T) {
	assert.Equal(t, ModeAll, ModeSpawnable.Next())
	assert.Equal(t, ModeLightLevel, ModeAll.Next())
	assert.Equal(t, ModeSpawnable, ModeLightLevel.Next())
}

func TestParseMode(t *testing.T) {
	for input, want := range map[string]Mode{
		"spawnable":   ModeSpawnable,
		"ALL":         ModeAll,
		"light_level": ModeLightLevel,
		"light-level": ModeLightLevel,
		" LightLevel": ModeLightLevel,
	} {
		got, err := ParseMode(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseMode("rainbow")
	assert.Error(t, err)
}

func TestMode_JSON(t *testing.T) {
	data, err := json.Marshal(Preference{Mode: ModeLightLevel, Enabled: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"light_level","enabled":true}`, string(data))

	var pref Preference
	require.NoError(t, json.Unmarshal([]byte(`{"mode":"all"}`), &pref))
	assert.Equal(t, ModeAll, pref.Mode)

	assert.Error(t, json.Unmarshal([]byte(`{"mode":"nope"}`), &pref))
}
