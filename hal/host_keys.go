//go:build !tinygo

package hal

// Button indexes in ButtonPins order.
const (
	ButtonMenu = iota
	ButtonPrev
	ButtonConfirm
	ButtonNext
	ButtonCancel
)

// ButtonForRune maps the letters used by scripted and terminal input to a
// button.
func ButtonForRune(r rune) (int, bool) {
	switch r {
	case 'm', 'M':
		return ButtonMenu, true
	case 'k', 'K', '<':
		return ButtonPrev, true
	case 'o', 'O', '\r', '\n':
		return ButtonConfirm, true
	case 'j', 'J', '>':
		return ButtonNext, true
	case 'x', 'X':
		return ButtonCancel, true
	}
	return 0, false
}
