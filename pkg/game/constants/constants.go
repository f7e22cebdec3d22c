package constants

import "time"

const (
	// GridSize is the width and height of the square board in cells
	GridSize int = 20

	// DefaultTickInterval is the time between two ticks
	DefaultTickInterval = 100 * time.Millisecond
	// SlowTickInterval is the interval of the slow speed setting
	SlowTickInterval = 150 * time.Millisecond
	// FastTickInterval is the interval of the fast speed setting
	FastTickInterval = 70 * time.Millisecond
	// MaxTicksPerFrame caps the catch-up ticks a frame driven scheduler runs at once
	MaxTicksPerFrame = 4

	// BestScoreKey is the store key holding the best score as a decimal string
	BestScoreKey = "snakeBestScore"
	// SaveBestScoreChannelSize is the buffer size of the best score save channel
	SaveBestScoreChannelSize = 16
)
