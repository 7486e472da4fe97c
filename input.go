package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/pokeball/input"
	"github.com/milk9111/pokeball/interaction"
)

// pointerSampler reads the mouse, or the first active touch, once per frame.
type pointerSampler struct {
	touch    ebiten.TouchID
	touching bool
	lastX    float64
	lastY    float64
}

func (p *pointerSampler) Sample(width, height float64) input.Sample {
	if p.touching {
		if inpututil.IsTouchJustReleased(p.touch) {
			p.touching = false
			return input.Sample{X: p.lastX, Y: p.lastY, Touch: true}
		}
		x, y := ebiten.TouchPosition(p.touch)
		p.lastX, p.lastY = float64(x), float64(y)
		return input.Sample{X: p.lastX, Y: p.lastY, Pressed: true, Touch: true}
	}
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		p.touch, p.touching = ids[0], true
		x, y := ebiten.TouchPosition(p.touch)
		p.lastX, p.lastY = float64(x), float64(y)
		return input.Sample{X: p.lastX, Y: p.lastY, Pressed: true, Touch: true}
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	_, wy := ebiten.Wheel()
	return input.Sample{
		X:       x,
		Y:       y,
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Inside:  ebiten.IsFocused() && x >= 0 && y >= 0 && x < width && y < height,
		Wheel:   wy,
	}
}

type ebitenCursor struct{}

func (ebitenCursor) SetCursor(s interaction.CursorStyle) {
	switch s {
	case interaction.CursorPointer:
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	default:
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}
