package selection

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestParseKey(t *testing.T) {
	tests := map[string]Key{
		"ArrowDown":  KeyDown,
		"down":       KeyDown,
		"ArrowRight": KeyRight,
		"ArrowUp":    KeyUp,
		" up ":       KeyUp,
		"ArrowLeft":  KeyLeft,
		"Enter":      KeyEnter,
		"return":     KeyEnter,
		"Escape":     KeyEscape,
		"ESC":        KeyEscape,
	}

	for name, want := range tests {
		got, err := ParseKey(name)
		if err != nil {
			t.Errorf("ParseKey(%q) failed: %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("ParseKey(%q) = %v, want %v", name, got, want)
		}
	}

	if _, err := ParseKey("Tab"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Expected ErrUnknownKey, got %v", err)
	}
}

func TestKeyString(t *testing.T) {
	for _, k := range []Key{KeyDown, KeyRight, KeyUp, KeyLeft, KeyEnter, KeyEscape} {
		parsed, err := ParseKey(k.String())
		if err != nil || parsed != k {
			t.Errorf("Round trip of %v failed: %v, %v", k, parsed, err)
		}
	}
	if KeyUnknown.String() != "Unknown" {
		t.Errorf("Unexpected name %q", KeyUnknown.String())
	}
}
