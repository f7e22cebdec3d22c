package scenes

import (
	"fmt"

	"github.com/cbodonnell/snake/client/objects"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// GameOverScene shows the final board under the result of the game.
type GameOverScene struct {
	*BaseScene

	board Scene
}

var _ Scene = &GameOverScene{}

// NewGameOverScene draws board, usually the finished game scene, below the result.
func NewGameOverScene(board Scene, event types.GameOverEvent) (Scene, error) {
	lines := []string{
		fmt.Sprintf("Score: %d", event.FinalScore),
		fmt.Sprintf("Best: %d", event.BestScore),
	}
	if event.NewBest {
		lines = append(lines, "New best score!")
	}
	lines = append(lines, "Enter to restart, Escape for menu")

	return &GameOverScene{
		BaseScene: NewBaseScene(objects.NewTextOverlayObject("overlay-gameover", "Game Over!", &objects.NewTextOverlayOptions{
			Lines: lines,
		})),
		board: board,
	}, nil
}

func (s *GameOverScene) Draw(screen *ebiten.Image) {
	if s.board != nil {
		s.board.Draw(screen)
	}
	s.BaseScene.Draw(screen)
}
