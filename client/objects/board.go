package objects

import (
	"image/color"

	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	boardColor     = color.NRGBA{R: 24, G: 28, B: 36, A: 255}
	gridLineColor  = color.NRGBA{R: 36, G: 42, B: 54, A: 255}
	snakeHeadColor = color.NRGBA{R: 120, G: 230, B: 110, A: 255}
	snakeBodyColor = color.NRGBA{R: 60, G: 170, B: 70, A: 255}
	foodColor      = color.NRGBA{R: 230, G: 70, B: 60, A: 255}
)

// BoardObject draws the empty board and its grid lines.
type BoardObject struct {
	*BaseObject

	gridSize int
}

func NewBoardObject(id string, gridSize int) *BoardObject {
	return &BoardObject{
		BaseObject: NewBaseObject(id, nil),
		gridSize:   gridSize,
	}
}

func (o *BoardObject) Draw(screen *ebiten.Image) {
	size := float32(o.gridSize * CellSize)
	vector.DrawFilledRect(screen, 0, HUDHeight, size, size, boardColor, false)
	for i := 1; i < o.gridSize; i++ {
		offset := float32(i * CellSize)
		vector.StrokeLine(screen, offset, HUDHeight, offset, HUDHeight+size, 1, gridLineColor, false)
		vector.StrokeLine(screen, 0, HUDHeight+offset, size, HUDHeight+offset, 1, gridLineColor, false)
	}
}

// SnakeObject draws the snake and the food of the latest snapshot.
type SnakeObject struct {
	*BaseObject

	snapshot func() types.Snapshot
}

func NewSnakeObject(id string, snapshot func() types.Snapshot) *SnakeObject {
	return &SnakeObject{
		BaseObject: NewBaseObject(id, &NewBaseObjectOpts{ZIndex: 1}),
		snapshot:   snapshot,
	}
}

func (o *SnakeObject) Draw(screen *ebiten.Image) {
	snapshot := o.snapshot()

	x, y, w, h := CellRect(snapshot.Food, 4)
	vector.DrawFilledRect(screen, x, y, w, h, foodColor, false)

	// body first so the head stays on top
	for i := len(snapshot.Snake) - 1; i >= 0; i-- {
		clr := snakeBodyColor
		if i == 0 {
			clr = snakeHeadColor
		}
		x, y, w, h := CellRect(snapshot.Snake[i], 1)
		vector.DrawFilledRect(screen, x, y, w, h, clr, false)
	}
}
