package objects

import (
	"github.com/cbodonnell/snake/pkg/game/constants"
	"github.com/cbodonnell/snake/pkg/game/types"
)

const (
	// CellSize is the side of a grid cell in pixels
	CellSize = 24
	// HUDHeight is the height of the score bar above the board
	HUDHeight = 48

	ScreenWidth  = constants.GridSize * CellSize
	ScreenHeight = HUDHeight + constants.GridSize*CellSize
)

// CellRect returns the screen rectangle of a grid cell, inset by pad pixels on each side.
func CellRect(cell types.Cell, pad float32) (x, y, w, h float32) {
	x = float32(cell.X*CellSize) + pad
	y = float32(HUDHeight+cell.Y*CellSize) + pad
	w = CellSize - 2*pad
	h = CellSize - 2*pad
	return x, y, w, h
}

// CellCenter returns the screen coordinates of the center of a grid cell.
func CellCenter(cell types.Cell) (x, y float64) {
	return float64(cell.X*CellSize) + CellSize/2, float64(HUDHeight+cell.Y*CellSize) + CellSize/2
}
