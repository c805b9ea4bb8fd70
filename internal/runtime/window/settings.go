package window

import "fmt"

// FullscreenMode selects how a window occupies the screen.
type FullscreenMode int

const (
	// FullscreenNone is a regular decorated window.
	FullscreenNone FullscreenMode = iota
	// FullscreenBorderless covers the current monitor without changing its
	// video mode.
	FullscreenBorderless
)

func (m FullscreenMode) String() string {
	switch m {
	case FullscreenNone:
		return "none"
	case FullscreenBorderless:
		return "borderless"
	default:
		return fmt.Sprintf("FullscreenMode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m FullscreenMode) MarshalText() ([]byte, error) {
	switch m {
	case FullscreenNone, FullscreenBorderless:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("window: unknown fullscreen mode %d", int(m))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *FullscreenMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "none":
		*m = FullscreenNone
	case "borderless":
		*m = FullscreenBorderless
	default:
		return fmt.Errorf("window: unknown fullscreen mode %q", string(text))
	}
	return nil
}

// Size is a window's inner size in physical pixels.
type Size struct {
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Settings describe the window the backend should create.
type Settings struct {
	Title      string         `yaml:"title"`
	Size       Size           `yaml:"size"`
	Resizable  bool           `yaml:"resizable"`
	Visible    bool           `yaml:"visible"`
	Fullscreen FullscreenMode `yaml:"fullscreen"`
}

// DefaultSettings returns an untitled, visible, resizable 1280x720 window.
func DefaultSettings() Settings {
	return Settings{
		Title:      "Untitled",
		Size:       Size{Width: 1280, Height: 720},
		Resizable:  true,
		Visible:    true,
		Fullscreen: FullscreenNone,
	}
}

// IsZero reports whether s is the zero value.
func (s Settings) IsZero() bool {
	return s == Settings{}
}

func (s Settings) WithTitle(title string) Settings {
	s.Title = title
	return s
}

func (s Settings) WithSize(width, height uint32) Settings {
	s.Size = Size{Width: width, Height: height}
	return s
}

func (s Settings) WithResizable(resizable bool) Settings {
	s.Resizable = resizable
	return s
}

func (s Settings) WithVisible(visible bool) Settings {
	s.Visible = visible
	return s
}

func (s Settings) WithFullscreenMode(mode FullscreenMode) Settings {
	s.Fullscreen = mode
	return s
}
