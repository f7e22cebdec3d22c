package objects

import (
	"fmt"
	"image/color"

	"github.com/cbodonnell/snake/client/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

var hudColor = color.NRGBA{R: 14, G: 16, B: 22, A: 255}

// HUDObject draws the live score and the best score above the board.
type HUDObject struct {
	*BaseObject

	score func() (score, best int)
}

func NewHUDObject(id string, score func() (score, best int)) *HUDObject {
	return &HUDObject{
		BaseObject: NewBaseObject(id, &NewBaseObjectOpts{ZIndex: 2}),
		score:      score,
	}
}

func (o *HUDObject) Draw(screen *ebiten.Image) {
	width := screen.Bounds().Dx()
	vector.DrawFilledRect(screen, 0, 0, float32(width), HUDHeight, hudColor, false)

	score, best := o.score()
	f := fonts.TTFNormalFont

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(12, 34)
	op.ColorScale.ScaleWithColor(color.White)
	text.DrawWithOptions(screen, fmt.Sprintf("Score: %d", score), f, op)

	t := fmt.Sprintf("Best: %d", best)
	bounds, _ := font.BoundString(f, t)
	op = &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(width-12-(bounds.Max.X-bounds.Min.X).Ceil()), 34)
	op.ColorScale.ScaleWithColor(color.White)
	text.DrawWithOptions(screen, t, f, op)
}
