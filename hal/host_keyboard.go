//go:build !tinygo && cgo

package hal

import "github.com/hajimehoshi/ebiten/v2"

var windowKeys = [ButtonCount][]ebiten.Key{
	ButtonMenu:    {ebiten.KeyM, ebiten.KeyF1},
	ButtonPrev:    {ebiten.KeyArrowUp, ebiten.KeyArrowLeft, ebiten.KeyK},
	ButtonConfirm: {ebiten.KeyEnter, ebiten.KeySpace, ebiten.KeyO},
	ButtonNext:    {ebiten.KeyArrowDown, ebiten.KeyArrowRight, ebiten.KeyJ},
	ButtonCancel:  {ebiten.KeyEscape, ebiten.KeyBackspace, ebiten.KeyX},
}

// pollKeys mirrors held keys onto the button lines. Debounce and repeat
// are left to the panel, as with real switches.
func pollKeys(h *Host) {
	for i, keys := range windowKeys {
		pressed := false
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				pressed = true
				break
			}
		}
		h.SetButton(i, pressed)
	}
}
