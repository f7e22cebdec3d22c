package terminal

import (
	"fmt"
	"sync"

	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/gdamore/tcell/v2"
)

const (
	headRune   = '@'
	bodyRune   = 'o'
	foodRune   = '*'
	borderRune = '#'

	// hudRow holds the score line, the board border starts right below it
	hudRow   = 0
	boardTop = 1
	// each cell is two columns wide so the board looks square
	cellWidth = 2
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	headStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	bodyStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	foodStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Renderer draws snapshots on a tcell screen.
// It is safe to use from the tick goroutine and the event loop at the same time.
type Renderer struct {
	screen    tcell.Screen
	bestScore func() int

	lock     sync.Mutex
	snapshot *types.Snapshot
	status   string
}

type NewRendererOptions struct {
	Screen tcell.Screen
	// BestScore is shown next to the score when set
	BestScore func() int
}

func NewRenderer(opts NewRendererOptions) *Renderer {
	return &Renderer{
		screen:    opts.Screen,
		bestScore: opts.BestScore,
	}
}

func (r *Renderer) Render(snapshot types.Snapshot) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.snapshot = &snapshot
	r.draw()
}

// SetStatus replaces the line shown under the board.
func (r *Renderer) SetStatus(status string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.status = status
	r.draw()
}

// Redraw draws the last snapshot again, used after a resize.
func (r *Renderer) Redraw() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.draw()
}

// CellPosition returns the screen column and row of the left half of a board cell.
func CellPosition(cell types.Cell) (int, int) {
	return (1 + cell.X) * cellWidth, boardTop + 1 + cell.Y
}

func (r *Renderer) draw() {
	r.screen.Clear()
	if r.snapshot == nil {
		r.screen.Show()
		return
	}
	s := r.snapshot

	hud := fmt.Sprintf("Score: %d", s.Score)
	if r.bestScore != nil {
		hud = fmt.Sprintf("%s  Best: %d", hud, r.bestScore())
	}
	drawText(r.screen, 0, hudRow, hud, textStyle)

	r.drawBorder(s.GridSize)
	r.fillCell(s.Food, foodRune, foodStyle)
	// tail first so the head stays visible
	for i := len(s.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			r.fillCell(s.Snake[i], headRune, headStyle)
			continue
		}
		r.fillCell(s.Snake[i], bodyRune, bodyStyle)
	}

	if r.status != "" {
		drawText(r.screen, 0, boardTop+s.GridSize+2, r.status, textStyle)
	}
	r.screen.Show()
}

func (r *Renderer) drawBorder(gridSize int) {
	right := (gridSize + 1) * cellWidth
	bottom := boardTop + gridSize + 1
	for x := 0; x < right+cellWidth; x++ {
		r.screen.SetContent(x, boardTop, borderRune, nil, borderStyle)
		r.screen.SetContent(x, bottom, borderRune, nil, borderStyle)
	}
	for y := boardTop; y <= bottom; y++ {
		for i := 0; i < cellWidth; i++ {
			r.screen.SetContent(i, y, borderRune, nil, borderStyle)
			r.screen.SetContent(right+i, y, borderRune, nil, borderStyle)
		}
	}
}

func (r *Renderer) fillCell(cell types.Cell, ch rune, style tcell.Style) {
	x, y := CellPosition(cell)
	r.screen.SetContent(x, y, ch, nil, style)
	r.screen.SetContent(x+1, y, ' ', nil, style)
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		screen.SetContent(x+i, y, ch, nil, style)
	}
}
