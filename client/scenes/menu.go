package scenes

import (
	"fmt"
	"image/color"
	"time"

	"github.com/cbodonnell/snake/client/fonts"
	"github.com/cbodonnell/snake/client/objects"
	"github.com/cbodonnell/snake/pkg/game/constants"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Speed is a tick interval offered on the menu.
type Speed struct {
	Label    string
	Interval time.Duration
}

var Speeds = []Speed{
	{Label: "Slow", Interval: constants.SlowTickInterval},
	{Label: "Normal", Interval: constants.DefaultTickInterval},
	{Label: "Fast", Interval: constants.FastTickInterval},
}

type MenuScene struct {
	*BaseScene

	onStart   func(interval time.Duration)
	bestScore int
	ui        *ebitenui.UI
}

type MenuSceneOptions struct {
	// OnStart is called with the chosen tick interval when a speed button is pressed.
	OnStart func(interval time.Duration)
	// BestScore is shown below the title.
	BestScore int
}

var _ Scene = &MenuScene{}

func NewMenuScene(opts MenuSceneOptions) (Scene, error) {
	if opts.OnStart == nil {
		return nil, fmt.Errorf("menu scene requires a start handler")
	}
	return &MenuScene{
		BaseScene: NewBaseScene(objects.NewBaseObject("menu-root", nil)),
		onStart:   opts.OnStart,
		bestScore: opts.BestScore,
	}, nil
}

func (s *MenuScene) Init() error {
	s.renderUI()
	return s.BaseScene.Init()
}

func (s *MenuScene) renderUI() {
	buttonImage := &widget.ButtonImage{
		Idle:    image.NewNineSliceColor(color.NRGBA{R: 60, G: 150, B: 70, A: 255}),
		Hover:   image.NewNineSliceColor(color.NRGBA{R: 80, G: 180, B: 90, A: 255}),
		Pressed: image.NewNineSliceColor(color.NRGBA{R: 40, G: 110, B: 50, A: 255}),
	}

	fontFace := fonts.TTFNormalFont

	rootContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.NRGBA{R: 24, G: 28, B: 36, A: 255})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(20),
			widget.RowLayoutOpts.Padding(widget.Insets{
				Top:    90,
				Left:   120,
				Right:  120,
				Bottom: 90,
			}))),
	)

	rootContainer.AddChild(widget.NewText(
		widget.TextOpts.Text("Snake", fonts.MPlusTitleFont, color.NRGBA{R: 120, G: 230, B: 110, A: 255}),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			}),
		),
	))

	rootContainer.AddChild(widget.NewText(
		widget.TextOpts.Text(fmt.Sprintf("Best: %d", s.bestScore), fontFace, color.NRGBA{254, 255, 255, 255}),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			}),
		),
	))

	for _, speed := range Speeds {
		speed := speed
		button := widget.NewButton(
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{
					Position: widget.RowLayoutPositionCenter,
					Stretch:  true,
				}),
			),
			widget.ButtonOpts.Image(buttonImage),
			widget.ButtonOpts.Text(speed.Label, fontFace, &widget.ButtonTextColor{
				Idle:     color.NRGBA{254, 255, 255, 255},
				Disabled: color.NRGBA{R: 200, G: 200, B: 200, A: 255},
			}),
			widget.ButtonOpts.TextPadding(widget.Insets{
				Left:   30,
				Right:  30,
				Top:    5,
				Bottom: 5,
			}),
		)
		button.ClickedEvent.AddHandler(func(args interface{}) {
			s.onStart(speed.Interval)
		})
		rootContainer.AddChild(button)
	}

	rootContainer.AddChild(widget.NewText(
		widget.TextOpts.Text("Enter starts at normal speed", fonts.TTFSmallFont, color.NRGBA{R: 200, G: 200, B: 200, A: 255}),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			}),
		),
	))

	s.ui = &ebitenui.UI{
		Container: rootContainer,
	}
}

func (s *MenuScene) Update() error {
	s.ui.Update()
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.onStart(constants.DefaultTickInterval)
		return nil
	}
	return s.BaseScene.Update()
}

func (s *MenuScene) Draw(screen *ebiten.Image) {
	s.ui.Draw(screen)
	s.BaseScene.Draw(screen)
}
