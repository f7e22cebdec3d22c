package input

import (
	"github.com/cbodonnell/snake/pkg/game/types"
)

// Key identifiers, named after the browser KeyboardEvent.key values.
const (
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

var keyDirections = map[string]types.Direction{
	KeyArrowUp:    types.DirectionUp,
	KeyArrowDown:  types.DirectionDown,
	KeyArrowLeft:  types.DirectionLeft,
	KeyArrowRight: types.DirectionRight,
}

// DirectionSetter is the part of the game controller the router drives.
type DirectionSetter interface {
	SetDirection(direction types.Direction) bool
}

// Router translates key identifiers into direction changes.
type Router struct {
	setter DirectionSetter
}

func NewRouter(setter DirectionSetter) *Router {
	return &Router{
		setter: setter,
	}
}

// Route forwards the direction for key and reports whether the controller accepted it.
// Unknown keys are ignored.
func (r *Router) Route(key string) bool {
	direction, ok := DirectionForKey(key)
	if !ok {
		return false
	}
	return r.setter.SetDirection(direction)
}

// DirectionForKey returns the direction bound to key, if any.
func DirectionForKey(key string) (types.Direction, bool) {
	direction, ok := keyDirections[key]
	return direction, ok
}
