package scores

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/repositories"
)

// Persistence reads and writes the best score as a decimal string under a single key.
type Persistence struct {
	store repositories.Store
	key   string
}

func NewPersistence(store repositories.Store, key string) *Persistence {
	return &Persistence{
		store: store,
		key:   key,
	}
}

// Load returns the stored best score. A missing, malformed or unreadable value is treated as 0.
func (p *Persistence) Load(ctx context.Context) int {
	value, err := p.store.Get(ctx, p.key)
	if err != nil {
		if !repositories.IsNotFound(err) {
			log.Error("Failed to load best score: %v", err)
		}
		return 0
	}

	score, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || score < 0 {
		log.Warn("Ignoring malformed best score %q", value)
		return 0
	}

	return score
}

// Save overwrites the stored best score.
func (p *Persistence) Save(ctx context.Context, score int) error {
	if err := p.store.Set(ctx, p.key, strconv.Itoa(score)); err != nil {
		return fmt.Errorf("failed to save best score: %v", err)
	}
	return nil
}
