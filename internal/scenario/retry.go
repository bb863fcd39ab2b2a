package scenario

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/lawnchairsociety/screenworld/internal/chooser"
	"github.com/lawnchairsociety/screenworld/internal/logger"
	"github.com/lawnchairsociety/screenworld/internal/worldmap"
)

// Attempt runs one generation with a freshly seeded generator.
type Attempt func(rng *rand.Rand) (*worldmap.World, error)

// Retryable reports whether a failed attempt may succeed with another seed.
// Bad inputs and catalogs that cannot cover the world fail the same way
// every time.
func Retryable(err error) bool {
	return !errors.Is(err, ErrInvalidConfig) && !errors.Is(err, chooser.ErrCatalog)
}

// GenerateWithRetry runs attempt with seeds seed, seed+1, ... until one
// succeeds, an error is not retryable, or attempts run out. It returns the
// world and the seed that produced it.
func GenerateWithRetry(seed int64, attempts int, attempt Attempt) (*worldmap.World, int64, error) {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		s := seed + int64(i)
		world, err := attempt(rand.New(rand.NewSource(s)))
		if err == nil {
			if i > 0 {
				logger.Info("Generation succeeded after retry", "attempt", i+1, "seed", s)
			}
			return world, s, nil
		}
		lastErr = err
		if !Retryable(err) {
			return nil, s, err
		}
		logger.Warning("Generation attempt failed", "attempt", i+1, "seed", s, "error", err)
	}
	return nil, seed + int64(attempts) - 1, fmt.Errorf("%d attempts failed, last error: %w", attempts, lastErr)
}
