package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, "Untitled", s.Title)
	assert.Equal(t, Size{Width: 1280, Height: 720}, s.Size)
	assert.True(t, s.Resizable)
	assert.True(t, s.Visible)
	assert.Equal(t, FullscreenNone, s.Fullscreen)
	assert.False(t, s.IsZero())
	assert.True(t, Settings{}.IsZero())
}

func TestSettingsBuilders(t *testing.T) {
	base := DefaultSettings()
	s := base.
		WithTitle("editor").
		WithSize(800, 600).
		WithResizable(false).
		WithVisible(false).
		WithFullscreenMode(FullscreenBorderless)

	assert.Equal(t, Settings{
		Title:      "editor",
		Size:       Size{Width: 800, Height: 600},
		Fullscreen: FullscreenBorderless,
	}, s)
	assert.Equal(t, "Untitled", base.Title, "builders must not mutate the receiver")
}

func TestSettingsYAML(t *testing.T) {
	in := "title: game\nsize:\n  width: 320\n  height: 200\nresizable: true\nfullscreen: borderless\n"

	var s Settings
	require.NoError(t, yaml.Unmarshal([]byte(in), &s))
	assert.Equal(t, "game", s.Title)
	assert.Equal(t, Size{Width: 320, Height: 200}, s.Size)
	assert.Equal(t, FullscreenBorderless, s.Fullscreen)

	out, err := yaml.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), "fullscreen: borderless")
}

func TestFullscreenModeText(t *testing.T) {
	var m FullscreenMode
	assert.Error(t, m.UnmarshalText([]byte("exclusive")))
	_, err := FullscreenMode(9).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "FullscreenMode(9)", FullscreenMode(9).String())
}

func TestIDText(t *testing.T) {
	id := NewID()
	assert.False(t, id.IsZero())
	assert.True(t, ID{}.IsZero())

	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseID("not-a-ulid")
	assert.Error(t, err)
}
