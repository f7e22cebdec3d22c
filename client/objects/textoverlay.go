package objects

import (
	"image/color"
	"strings"

	"github.com/cbodonnell/snake/client/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

var overlayShade = color.NRGBA{A: 160}

// TextOverlayObject draws a headline and optional detail lines centered on a shaded screen.
type TextOverlayObject struct {
	*BaseObject

	text    string
	lines   []string
	visible func() bool
}

type NewTextOverlayOptions struct {
	// Lines are drawn below the headline with a smaller font
	Lines []string
	// Visible hides the overlay while it returns false. Nil means always visible.
	Visible func() bool
	ZIndex  int
}

func NewTextOverlayObject(id string, text string, opts *NewTextOverlayOptions) *TextOverlayObject {
	o := &TextOverlayObject{
		BaseObject: NewBaseObject(id, nil),
		text:       text,
	}
	if opts != nil {
		o.BaseObject.zIndex = opts.ZIndex
		o.lines = opts.Lines
		o.visible = opts.Visible
	}
	return o
}

func (o *TextOverlayObject) Draw(screen *ebiten.Image) {
	if o.visible != nil && !o.visible() {
		return
	}
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, 0, float32(width), float32(height), overlayShade, false)

	y := float64(height)/2 - float64(len(o.lines))*16
	drawCentered(screen, strings.ToUpper(o.text), fonts.TTFLargeFont, float64(width)/2, y, color.White)
	for _, line := range o.lines {
		y += 40
		drawCentered(screen, line, fonts.TTFNormalFont, float64(width)/2, y, color.White)
	}
}

// drawCentered draws t with its baseline at y, horizontally centered on x.
func drawCentered(screen *ebiten.Image, t string, f font.Face, x, y float64, clr color.Color) {
	bounds, _ := font.BoundString(f, t)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x-float64((bounds.Max.X-bounds.Min.X).Ceil())/2, y)
	op.ColorScale.ScaleWithColor(clr)
	text.DrawWithOptions(screen, t, f, op)
}
