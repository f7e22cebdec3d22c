package scores

import (
	"context"
	"sync"
	"testing"

	mocks "github.com/cbodonnell/snake/mocks/github.com/cbodonnell/snake/pkg/repositories"
	"github.com/cbodonnell/snake/pkg/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPersistence_Load(t *testing.T) {
	tests := []struct {
		name  string
		setup func(store *mocks.Store)
		want  int
	}{
		{
			name: "stored value",
			setup: func(store *mocks.Store) {
				store.EXPECT().Get(mock.Anything, "snakeBestScore").Return("42", nil).Once()
			},
			want: 42,
		},
		{
			name: "missing value",
			setup: func(store *mocks.Store) {
				store.EXPECT().Get(mock.Anything, "snakeBestScore").Return("", &repositories.ErrNotFound{Key: "snakeBestScore"}).Once()
			},
			want: 0,
		},
		{
			name: "unparsable value",
			setup: func(store *mocks.Store) {
				store.EXPECT().Get(mock.Anything, "snakeBestScore").Return("lots", nil).Once()
			},
			want: 0,
		},
		{
			name: "negative value",
			setup: func(store *mocks.Store) {
				store.EXPECT().Get(mock.Anything, "snakeBestScore").Return("-4", nil).Once()
			},
			want: 0,
		},
		{
			name: "store unavailable",
			setup: func(store *mocks.Store) {
				store.EXPECT().Get(mock.Anything, "snakeBestScore").Return("", assert.AnError).Once()
			},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewStore(t)
			tt.setup(store)
			p := NewPersistence(store, "snakeBestScore")
			assert.Equal(t, tt.want, p.Load(context.Background()))
		})
	}
}

func TestPersistence_Save(t *testing.T) {
	store := mocks.NewStore(t)
	store.EXPECT().Set(mock.Anything, "snakeBestScore", "5").Return(nil).Once()
	store.EXPECT().Set(mock.Anything, "snakeBestScore", "6").Return(assert.AnError).Once()

	p := NewPersistence(store, "snakeBestScore")
	assert.NoError(t, p.Save(context.Background(), 5))
	assert.Error(t, p.Save(context.Background(), 6))
}

func TestPersistence_roundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewPersistence(repositories.NewMemoryStore(), "snakeBestScore")

	assert.Equal(t, 0, p.Load(ctx))
	assert.NoError(t, p.Save(ctx, 17))
	assert.Equal(t, 17, p.Load(ctx))
}

func TestTracker_Submit(t *testing.T) {
	tracker := NewTracker(3)

	assert.False(t, tracker.Submit(2))
	assert.False(t, tracker.Submit(3))
	assert.Equal(t, 3, tracker.Best())

	assert.True(t, tracker.Submit(5))
	assert.Equal(t, 5, tracker.Best())
}

func TestTracker_concurrentSubmit(t *testing.T) {
	tracker := NewTracker(0)
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			tracker.Submit(score)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, tracker.Best())
}

func TestNewTracker_clampsNegative(t *testing.T) {
	assert.Equal(t, 0, NewTracker(-1).Best())
}
