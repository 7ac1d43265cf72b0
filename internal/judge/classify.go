package judge

import (
	"math"

	"git.lost.host/meutraa/lanejudge/internal/game"
)

// PoolBand is how far past the Miss window a Pool judgement reaches.
const PoolBand = 50.0

// Classify judges a signed offset (input time minus note time, in ms).
// Pool is only returned for offsets strictly beyond Miss and inside the pool
// band, early or late. Otherwise the tightest allowed window containing the
// offset wins, and None is returned when nothing does.
func Classify(offset float64, w HitWindowSet, poolEnabled bool, allowed game.ResultSet) game.HitResult {
	abs := math.Abs(offset)

	if poolEnabled && allowed.Has(game.Pool) {
		miss := w.Miss()
		limit := math.Min(miss+PoolBand, w.pool)
		if abs > miss && abs < limit {
			return game.Pool
		}
	}

	for _, r := range game.ScanOrder {
		if !allowed.Has(r) {
			continue
		}
		if abs <= w.windows[r.Index()] {
			return r
		}
	}
	return game.None
}
