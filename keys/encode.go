package keys

import "fmt"

// Bytes encodes the key as the raw byte sequence a terminal sends: plain
// runes and control characters for unmodified keys, ESC-prefix for Alt+char,
// control codes for Ctrl+char, and xterm modified CSI sequences for
// everything else. Bare modifiers have no byte form.
func (k Key) Bytes() ([]byte, error) {
	if k.kind == kindModifier {
		return nil, fmt.Errorf("keys: bare modifier %s cannot be sent alone", k)
	}
	if k.mods == 0 {
		return k.plainBytes()
	}

	// Alt+char is the traditional ESC prefix.
	if k.mods == ModAlt && k.kind == kindChar {
		return append([]byte{0x1b}, []byte(string(k.ch))...), nil
	}

	// Ctrl+char collapses to a control code where one exists.
	if k.mods == ModCtrl && k.kind == kindChar {
		if code, ok := ctrlCode(k.ch); ok {
			return []byte{code}, nil
		}
		return k.plainBytes()
	}

	m := k.modifierCode()
	switch k.kind {
	case kindUp:
		return []byte(fmt.Sprintf("\x1b[1;%dA", m)), nil
	case kindDown:
		return []byte(fmt.Sprintf("\x1b[1;%dB", m)), nil
	case kindRight:
		return []byte(fmt.Sprintf("\x1b[1;%dC", m)), nil
	case kindLeft:
		return []byte(fmt.Sprintf("\x1b[1;%dD", m)), nil
	case kindHome:
		return []byte(fmt.Sprintf("\x1b[1;%dH", m)), nil
	case kindEnd:
		return []byte(fmt.Sprintf("\x1b[1;%dF", m)), nil
	case kindPageUp:
		return []byte(fmt.Sprintf("\x1b[5;%d~", m)), nil
	case kindPageDown:
		return []byte(fmt.Sprintf("\x1b[6;%d~", m)), nil
	case kindInsert:
		return []byte(fmt.Sprintf("\x1b[2;%d~", m)), nil
	case kindDelete:
		return []byte(fmt.Sprintf("\x1b[3;%d~", m)), nil
	case kindFunc:
		return k.funcBytes(m)
	case kindChar:
		// CSI u encoding carries arbitrary modifier sets on printable keys.
		return []byte(fmt.Sprintf("\x1b[%d;%du", k.ch, m)), nil
	}
	// Enter/Esc/Tab/Backspace have no standard modified form; send plain.
	return k.plainBytes()
}

func (k Key) plainBytes() ([]byte, error) {
	switch k.kind {
	case kindChar:
		return []byte(string(k.ch)), nil
	case kindEnter:
		return []byte{'\r'}, nil
	case kindEsc:
		return []byte{0x1b}, nil
	case kindTab:
		return []byte{'\t'}, nil
	case kindBackspace:
		return []byte{0x7f}, nil
	case kindUp:
		return []byte("\x1b[A"), nil
	case kindDown:
		return []byte("\x1b[B"), nil
	case kindRight:
		return []byte("\x1b[C"), nil
	case kindLeft:
		return []byte("\x1b[D"), nil
	case kindHome:
		return []byte("\x1b[H"), nil
	case kindEnd:
		return []byte("\x1b[F"), nil
	case kindPageUp:
		return []byte("\x1b[5~"), nil
	case kindPageDown:
		return []byte("\x1b[6~"), nil
	case kindInsert:
		return []byte("\x1b[2~"), nil
	case kindDelete:
		return []byte("\x1b[3~"), nil
	case kindFunc:
		return k.funcBytes(0)
	}
	return nil, fmt.Errorf("keys: no byte encoding for %s", k)
}

func (k Key) funcBytes(mod int) ([]byte, error) {
	if k.num < 1 || k.num > 12 {
		return nil, fmt.Errorf("keys: function key F%d out of range", k.num)
	}
	// F1-F4 use SS3 unmodified, CSI 1;mP..S modified. F5+ use CSI ~ forms
	// with the historical gaps.
	if k.num <= 4 {
		final := byte('P' + k.num - 1)
		if mod == 0 {
			return []byte{0x1b, 'O', final}, nil
		}
		return []byte(fmt.Sprintf("\x1b[1;%d%c", mod, final)), nil
	}
	base := []int{15, 17, 18, 19, 20, 21, 23, 24}[k.num-5]
	if mod == 0 {
		return []byte(fmt.Sprintf("\x1b[%d~", base)), nil
	}
	return []byte(fmt.Sprintf("\x1b[%d;%d~", base, mod)), nil
}

// ctrlCode maps a rune to its ASCII control code.
func ctrlCode(r rune) (byte, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return byte(r-'a') + 1, true
	case r >= 'A' && r <= 'Z':
		return byte(r-'A') + 1, true
	}
	switch r {
	case '@':
		return 0, true
	case '[':
		return 27, true
	case '\\':
		return 28, true
	case ']':
		return 29, true
	case '^':
		return 30, true
	case '_':
		return 31, true
	case ' ':
		return 0, true
	}
	return 0, false
}

// modifierCode is the xterm modifier parameter: 1 plus Shift=1, Alt=2,
// Ctrl=4, Super=8.
func (k Key) modifierCode() int {
	code := 1
	if k.mods&ModShift != 0 {
		code += 1
	}
	if k.mods&ModAlt != 0 {
		code += 2
	}
	if k.mods&ModCtrl != 0 {
		code += 4
	}
	if k.mods&ModSuper != 0 {
		code += 8
	}
	return code
}

// TmuxName encodes the key as a tmux send-keys argument, e.g. "C-a",
// "M-Left", "F5". tmux has no Super prefix; Super is dropped. Bare modifiers
// have no name of their own.
func (k Key) TmuxName() (string, error) {
	if k.kind == kindModifier {
		return "", fmt.Errorf("keys: bare modifier %s cannot be sent alone", k)
	}
	base, err := k.tmuxBase()
	if err != nil {
		return "", err
	}
	var prefix string
	if k.mods&ModCtrl != 0 {
		prefix += "C-"
	}
	if k.mods&ModAlt != 0 {
		prefix += "M-"
	}
	if k.mods&ModShift != 0 {
		prefix += "S-"
	}
	return prefix + base, nil
}

func (k Key) tmuxBase() (string, error) {
	switch k.kind {
	case kindChar:
		switch k.ch {
		case ' ':
			return "Space", nil
		case ';':
			return "\\;", nil
		}
		return string(k.ch), nil
	case kindEnter:
		return "Enter", nil
	case kindEsc:
		return "Escape", nil
	case kindTab:
		return "Tab", nil
	case kindBackspace:
		return "BSpace", nil
	case kindUp:
		return "Up", nil
	case kindDown:
		return "Down", nil
	case kindLeft:
		return "Left", nil
	case kindRight:
		return "Right", nil
	case kindHome:
		return "Home", nil
	case kindEnd:
		return "End", nil
	case kindPageUp:
		return "PPage", nil
	case kindPageDown:
		return "NPage", nil
	case kindDelete:
		return "DC", nil
	case kindInsert:
		return "IC", nil
	case kindFunc:
		if k.num < 1 || k.num > 12 {
			return "", fmt.Errorf("keys: function key F%d out of range", k.num)
		}
		return fmt.Sprintf("F%d", k.num), nil
	}
	return "", fmt.Errorf("keys: no tmux name for %s", k)
}
