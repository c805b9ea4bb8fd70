package window

import (
	"github.com/oklog/ulid/v2"

	idspkg "github.com/drblury/winloop/internal/runtime/ids"
)

// ID identifies a window for its whole life. It is minted when the window is
// requested, before the backend knows about it.
type ID ulid.ULID

// NewID mints a fresh, process-unique window ID.
func NewID() ID {
	return ID(idspkg.New())
}

// ParseID decodes the string form of an ID.
func ParseID(s string) (ID, error) {
	u, err := ulid.Parse(s)
	if err != nil {
		return ID{}, err
	}
	return ID(u), nil
}

func (id ID) String() string {
	return ulid.ULID(id).String()
}

// IsZero reports whether id is the zero ID.
func (id ID) IsZero() bool {
	return id == ID{}
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return ulid.ULID(id).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	return (*ulid.ULID)(id).UnmarshalText(text)
}

// PlatformID is the backend's own window identifier. It is meaningful only
// to the backend that issued it.
type PlatformID uint64
