// Package keys models keyboard input for terminal test sessions. A Key is
// either a concrete key (a printable rune, Enter, an arrow, a function key)
// optionally carrying modifiers, or a bare modifier used when building
// combinations. Encoding to raw bytes or tmux send-keys names lives in
// encode.go.
package keys

import (
	"fmt"
	"strings"
)

// Mod is a bit set of key modifiers.
type Mod uint8

const (
	ModShift Mod = 1 << iota
	ModAlt
	ModCtrl
	ModSuper
)

type kind uint8

const (
	kindChar kind = iota
	kindEnter
	kindEsc
	kindTab
	kindBackspace
	kindUp
	kindDown
	kindLeft
	kindRight
	kindHome
	kindEnd
	kindPageUp
	kindPageDown
	kindDelete
	kindInsert
	kindFunc
	kindModifier
)

// Key is a single keyboard input. The zero value is Char(0) and is not
// useful; construct keys with the package-level constructors.
type Key struct {
	kind kind
	ch   rune
	num  int
	mods Mod
}

// Named keys.
var (
	Enter     = Key{kind: kindEnter}
	Esc       = Key{kind: kindEsc}
	Tab       = Key{kind: kindTab}
	Backspace = Key{kind: kindBackspace}
	Up        = Key{kind: kindUp}
	Down      = Key{kind: kindDown}
	Left      = Key{kind: kindLeft}
	Right     = Key{kind: kindRight}
	Home      = Key{kind: kindHome}
	End       = Key{kind: kindEnd}
	PageUp    = Key{kind: kindPageUp}
	PageDown  = Key{kind: kindPageDown}
	Delete    = Key{kind: kindDelete}
	Insert    = Key{kind: kindInsert}
)

// Bare modifiers, for passing alongside a concrete key in a combination.
var (
	CtrlMod  = Key{kind: kindModifier, mods: ModCtrl}
	AltMod   = Key{kind: kindModifier, mods: ModAlt}
	ShiftMod = Key{kind: kindModifier, mods: ModShift}
	SuperMod = Key{kind: kindModifier, mods: ModSuper}
)

// Char is a printable key.
func Char(r rune) Key { return Key{kind: kindChar, ch: r} }

// F is a function key, F(1) through F(12).
func F(n int) Key { return Key{kind: kindFunc, num: n} }

// Ctrl is shorthand for Char(r) with the Ctrl modifier.
func Ctrl(r rune) Key { return Char(r).WithMod(ModCtrl) }

// Alt is shorthand for Char(r) with the Alt modifier.
func Alt(r rune) Key { return Char(r).WithMod(ModAlt) }

// WithMod returns a copy of k with the given modifiers added.
func (k Key) WithMod(m Mod) Key {
	k.mods |= m
	return k
}

// IsModifier reports whether k is a bare modifier with no concrete key.
func (k Key) IsModifier() bool { return k.kind == kindModifier }

// Combine folds a key list into one modified key. The list must contain
// exactly one non-modifier key; any number of bare modifiers fold into its
// modifier set. Zero or multiple concrete keys is a test-authoring error.
func Combine(ks []Key) (Key, error) {
	var mods Mod
	var concrete []Key
	for _, k := range ks {
		if k.IsModifier() {
			mods |= k.mods
		} else {
			concrete = append(concrete, k)
		}
	}
	switch len(concrete) {
	case 0:
		return Key{}, fmt.Errorf("keys: combination needs exactly one non-modifier key, got none")
	case 1:
		return concrete[0].WithMod(mods), nil
	default:
		return Key{}, fmt.Errorf("keys: combination needs exactly one non-modifier key, got %d", len(concrete))
	}
}

// String renders the key for error messages, e.g. "Ctrl+Shift+R".
func (k Key) String() string {
	var parts []string
	if k.mods&ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if k.mods&ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if k.mods&ModShift != 0 {
		parts = append(parts, "Shift")
	}
	if k.mods&ModSuper != 0 {
		parts = append(parts, "Super")
	}
	switch k.kind {
	case kindChar:
		parts = append(parts, string(k.ch))
	case kindFunc:
		parts = append(parts, fmt.Sprintf("F%d", k.num))
	case kindModifier:
		if len(parts) == 0 {
			parts = append(parts, "Modifier")
		}
	default:
		parts = append(parts, keyNames[k.kind])
	}
	return strings.Join(parts, "+")
}

var keyNames = map[kind]string{
	kindEnter:     "Enter",
	kindEsc:       "Esc",
	kindTab:       "Tab",
	kindBackspace: "Backspace",
	kindUp:        "Up",
	kindDown:      "Down",
	kindLeft:      "Left",
	kindRight:     "Right",
	kindHome:      "Home",
	kindEnd:       "End",
	kindPageUp:    "PageUp",
	kindPageDown:  "PageDown",
	kindDelete:    "Delete",
	kindInsert:    "Insert",
}
