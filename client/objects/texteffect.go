package objects

import (
	"fmt"
	"image/color"

	"github.com/cbodonnell/snake/client/fonts"
	"github.com/hajimehoshi/ebiten/v2"
)

// TextEffect is a short lived text that floats up and removes itself.
type TextEffect struct {
	*BaseObject

	text   string
	x      float64
	y      float64
	color  color.Color
	scroll bool
	ttl    int
}

type NewTextEffectOptions struct {
	// Text is the text to display.
	Text string
	// X is the x-coordinate of the text center.
	X float64
	// Y is the y-coordinate of the text baseline.
	Y float64
	// Color is the color of the text.
	Color color.Color
	// Scroll is a boolean value indicating whether the text should float up.
	Scroll bool
	// TTL is the time to live in milliseconds.
	TTL int
	// ZIndex is the z-index of the text effect.
	ZIndex int
}

func NewTextEffect(id string, opts NewTextEffectOptions) *TextEffect {
	clr := opts.Color
	if clr == nil {
		clr = color.White
	}

	baseObjectOpts := &NewBaseObjectOpts{
		ZIndex: opts.ZIndex,
	}

	return &TextEffect{
		BaseObject: NewBaseObject(id, baseObjectOpts),
		text:       opts.Text,
		x:          opts.X,
		y:          opts.Y,
		color:      clr,
		scroll:     opts.Scroll,
		ttl:        opts.TTL,
	}
}

func (o *TextEffect) Update() error {
	if o.scroll {
		o.y -= 60 / float64(ebiten.TPS())
	}
	if o.ttl > 0 {
		o.ttl -= 1000 / ebiten.TPS()
		if o.ttl <= 0 {
			if err := o.BaseObject.RemoveFromParent(); err != nil {
				return fmt.Errorf("failed to remove text effect from parent: %w", err)
			}
		}
	}
	return nil
}

func (o *TextEffect) Draw(screen *ebiten.Image) {
	drawCentered(screen, o.text, fonts.TTFSmallFont, o.x, o.y, o.color)
}
