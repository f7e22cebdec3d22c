package scenes

import (
	"fmt"
	"image/color"
	"time"

	"github.com/cbodonnell/snake/client/input"
	"github.com/cbodonnell/snake/client/objects"
	"github.com/cbodonnell/snake/pkg/game"
	"github.com/cbodonnell/snake/pkg/game/types"
	snakeinput "github.com/cbodonnell/snake/pkg/input"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/hajimehoshi/ebiten/v2"
)

var scoreEffectColor = color.NRGBA{R: 255, G: 220, B: 90, A: 255}

// GameScene plays a game driven by the frame loop. It is also the game's renderer:
// snapshots arrive from inside Update, on the same goroutine.
type GameScene struct {
	*BaseScene

	manager *game.GameManager
	loop    *game.Loop
	frames  *game.FrameScheduler
	router  *snakeinput.Router

	snapshot types.Snapshot
	effects  int
}

type GameSceneOptions struct {
	Manager *game.GameManager
	Loop    *game.Loop
	Frames  *game.FrameScheduler
}

var _ Scene = &GameScene{}
var _ game.Renderer = &GameScene{}

func NewGameScene(opts GameSceneOptions) (*GameScene, error) {
	if opts.Manager == nil || opts.Loop == nil || opts.Frames == nil {
		return nil, fmt.Errorf("game scene requires a manager, a loop and a frame scheduler")
	}

	root := objects.NewBaseObject("game-root", nil)
	s := &GameScene{
		BaseScene: NewBaseScene(root),
		manager:   opts.Manager,
		loop:      opts.Loop,
		frames:    opts.Frames,
		router:    snakeinput.NewRouter(opts.Manager),
		snapshot:  opts.Manager.Snapshot(),
	}

	children := []objects.GameObject{
		objects.NewBoardObject("board", opts.Manager.GridSize()),
		objects.NewSnakeObject("snake", func() types.Snapshot { return s.snapshot }),
		objects.NewHUDObject("hud", func() (int, int) { return s.snapshot.Score, s.manager.BestScore() }),
		objects.NewTextOverlayObject("overlay-paused", "Paused", &objects.NewTextOverlayOptions{
			Lines:   []string{"Space or P to resume"},
			Visible: s.loop.Paused,
			ZIndex:  10,
		}),
	}
	for _, child := range children {
		if err := root.AddChild(child); err != nil {
			return nil, fmt.Errorf("failed to add %s to game scene: %v", child.GetID(), err)
		}
	}

	return s, nil
}

// Render keeps the latest snapshot and celebrates eaten food.
func (s *GameScene) Render(snapshot types.Snapshot) {
	if snapshot.GameID == s.snapshot.GameID && snapshot.Score > s.snapshot.Score {
		s.addScoreEffect(snapshot.Snake[0])
	}
	s.snapshot = snapshot
}

func (s *GameScene) addScoreEffect(at types.Cell) {
	s.effects++
	x, y := objects.CellCenter(at)
	effect := objects.NewTextEffect(fmt.Sprintf("score-effect-%d", s.effects), objects.NewTextEffectOptions{
		Text:   "+1",
		X:      x,
		Y:      y - objects.CellSize/2,
		Color:  scoreEffectColor,
		Scroll: true,
		TTL:    600,
		ZIndex: 5,
	})
	if err := s.Root.AddChild(effect); err != nil {
		log.Warn("Failed to add score effect: %v", err)
	}
}

func (s *GameScene) Update() error {
	if input.IsPauseJustPressed() {
		s.loop.TogglePause()
	}

	if !s.loop.Paused() {
		for _, key := range input.JustPressedDirectionKeys() {
			s.router.Route(key)
		}
	}

	s.frames.Advance(time.Second / time.Duration(ebiten.TPS()))

	return s.BaseScene.Update()
}
