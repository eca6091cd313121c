package agg

import (
	"math"
	"slices"
	"strings"

	"github.com/huangsam/fastball/schema"
)

// Aggregator folds per-game speeds into per-pitcher totals across many games.
//
// max_speed is a true max-of-maxes. avg_fastball_speed is the unweighted mean
// of per-game averages: a game with two fastballs counts as much as a game
// with forty. Results therefore depend on how pitches split across games.
type Aggregator struct {
	maxSpeed    map[string]float64
	gameAvgs    map[string][]float64
	gamesByName map[string]int
	games       int
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		maxSpeed:    make(map[string]float64),
		gameAvgs:    make(map[string][]float64),
		gamesByName: make(map[string]int),
	}
}

// Add folds one game's extraction result into the running totals.
func (a *Aggregator) Add(game schema.GameSpeeds) {
	a.games++
	for name, speed := range game.MaxSpeed {
		if current, seen := a.maxSpeed[name]; !seen || speed > current {
			a.maxSpeed[name] = speed
		}
		a.gamesByName[name]++
	}
	for name, avg := range game.AvgFastballSpeed() {
		a.gameAvgs[name] = append(a.gameAvgs[name], avg)
	}
}

// Games returns the number of games folded in so far.
func (a *Aggregator) Games() int {
	return a.games
}

// MaxSpeeds returns the running maximum speed per pitcher.
func (a *Aggregator) MaxSpeeds() map[string]float64 {
	out := make(map[string]float64, len(a.maxSpeed))
	for name, speed := range a.maxSpeed {
		out[name] = speed
	}
	return out
}

// AvgFastballSpeeds returns the average of per-game fastball averages per pitcher.
// Pitchers without any fastball are omitted.
func (a *Aggregator) AvgFastballSpeeds() map[string]float64 {
	out := make(map[string]float64, len(a.gameAvgs))
	for name, avgs := range a.gameAvgs {
		if len(avgs) == 0 {
			continue
		}
		out[name] = mean(avgs)
	}
	return out
}

// Records returns one record per pitcher, ordered by pitcher name.
// Pitchers with a max speed but no fastball report an average of 0.
func (a *Aggregator) Records() []schema.PitcherSpeedRecord {
	records := MergeSpeeds(a.MaxSpeeds(), a.AvgFastballSpeeds())
	for i := range records {
		records[i].Games = a.gamesByName[records[i].Pitcher]
		records[i].FastballGames = len(a.gameAvgs[records[i].Pitcher])
	}
	return records
}

// MergeSpeeds combines max and average maps into records ordered by pitcher name.
// Every pitcher of either map appears; a missing value is reported as 0.
func MergeSpeeds(maxSpeeds, avgSpeeds map[string]float64) []schema.PitcherSpeedRecord {
	names := make([]string, 0, len(maxSpeeds))
	for name := range maxSpeeds {
		names = append(names, name)
	}
	for name := range avgSpeeds {
		if _, ok := maxSpeeds[name]; !ok {
			names = append(names, name)
		}
	}
	slices.SortFunc(names, strings.Compare)

	records := make([]schema.PitcherSpeedRecord, 0, len(names))
	for _, name := range names {
		records = append(records, schema.PitcherSpeedRecord{
			Pitcher:          name,
			MaxSpeed:         maxSpeeds[name],
			AvgFastballSpeed: avgSpeeds[name],
		})
	}
	return records
}

// mean returns the arithmetic mean, or NaN for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
