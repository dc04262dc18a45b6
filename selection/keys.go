package selection

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Key is a navigation key understood by the Controller.
type Key int

const (
	KeyUnknown Key = iota
	KeyDown
	KeyRight
	KeyUp
	KeyLeft
	KeyEnter
	KeyEscape
)

// String returns the DOM key name of k.
func (k Key) String() string {
	switch k {
	case KeyDown:
		return "ArrowDown"
	case KeyRight:
		return "ArrowRight"
	case KeyUp:
		return "ArrowUp"
	case KeyLeft:
		return "ArrowLeft"
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Escape"
	default:
		return "Unknown"
	}
}

// ErrUnknownKey is returned by ParseKey for names it does not recognize.
var ErrUnknownKey = errors.New("selection: unknown key")

// ParseKey maps a DOM key name, or a short alias such as "down" or "esc",
// to a Key. Matching is case-insensitive.
func ParseKey(name string) (Key, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "arrowdown", "down":
		return KeyDown, nil
	case "arrowright", "right":
		return KeyRight, nil
	case "arrowup", "up":
		return KeyUp, nil
	case "arrowleft", "left":
		return KeyLeft, nil
	case "enter", "return":
		return KeyEnter, nil
	case "escape", "esc":
		return KeyEscape, nil
	default:
		return KeyUnknown, errors.Wrapf(ErrUnknownKey, "%q", name)
	}
}
