// Package schema holds the data model shared by the fetch, extract, aggregate and report stages.
package schema

import "time"

// Schedule is the response of the schedule endpoint for one date.
type Schedule struct {
	TotalGames int            `json:"totalGames"`
	Dates      []ScheduleDate `json:"dates"`
}

// ScheduleDate groups the games scheduled on one calendar date.
type ScheduleDate struct {
	Date  string          `json:"date"`
	Games []ScheduledGame `json:"games"`
}

// ScheduledGame is one entry in a schedule. GamePk is zero when the entry has no id.
type ScheduledGame struct {
	GamePk   int64  `json:"gamePk"`
	Link     string `json:"link"`
	GameDate string `json:"gameDate"`
}

// Games flattens every game across all date groups, preserving order.
func (s Schedule) Games() []ScheduledGame {
	var games []ScheduledGame
	for _, d := range s.Dates {
		games = append(games, d.Games...)
	}
	return games
}

// GameSpeeds is the per-game extraction result keyed by resolved pitcher name.
type GameSpeeds struct {
	MaxSpeed       map[string]float64
	FastballSpeeds map[string][]float64
}

// NewGameSpeeds returns a GameSpeeds with empty, non-nil maps.
func NewGameSpeeds() GameSpeeds {
	return GameSpeeds{
		MaxSpeed:       make(map[string]float64),
		FastballSpeeds: make(map[string][]float64),
	}
}

// AvgFastballSpeed returns the mean fastball speed per pitcher for this game.
// Pitchers without fastballs are omitted.
func (g GameSpeeds) AvgFastballSpeed() map[string]float64 {
	out := make(map[string]float64, len(g.FastballSpeeds))
	for name, speeds := range g.FastballSpeeds {
		if len(speeds) == 0 {
			continue
		}
		sum := 0.0
		for _, s := range speeds {
			sum += s
		}
		out[name] = sum / float64(len(speeds))
	}
	return out
}

// PitcherSpeedRecord is the aggregated speed profile of one pitcher.
type PitcherSpeedRecord struct {
	Pitcher          string  `json:"pitcher"`
	MaxSpeed         float64 `json:"max_speed"`
	AvgFastballSpeed float64 `json:"avg_fastball_speed"`
	Games            int     `json:"games,omitempty"`
	FastballGames    int     `json:"fastball_games,omitempty"`
}

// Value returns the metric named by column.
func (r PitcherSpeedRecord) Value(column SpeedColumn) float64 {
	if column == AvgFastballSpeedColumn {
		return r.AvgFastballSpeed
	}
	return r.MaxSpeed
}

// FetchSummary counts the outcome of a fetch run.
type FetchSummary struct {
	Dates      int `json:"dates"`
	Games      int `json:"games"`
	Downloaded int `json:"downloaded"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

// SpeedSummary is the outcome of an aggregation run.
type SpeedSummary struct {
	Pitchers       []PitcherSpeedRecord `json:"pitchers"`
	Stats          []ColumnStats        `json:"stats,omitempty"`
	GamesProcessed int                  `json:"games_processed"`
	GamesSkipped   int                  `json:"games_skipped"`
	Duration       time.Duration        `json:"-"`
}

// ColumnStats are the descriptive statistics of one speed column.
type ColumnStats struct {
	Name   SpeedColumn `json:"name"`
	Count  int         `json:"count"`
	Mean   float64     `json:"mean"`
	Std    float64     `json:"std"`
	Min    float64     `json:"min"`
	Q25    float64     `json:"q25"`
	Median float64     `json:"median"`
	Q75    float64     `json:"q75"`
	Max    float64     `json:"max"`
}

// HistogramBin is one bin of a histogram over [Low, High).
// The last bin of a histogram is closed on both ends.
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// SpeedReport is everything the report command prints about a set of records.
// Correlation is nil when it is undefined (fewer than two records or a constant column).
type SpeedReport struct {
	Records      []PitcherSpeedRecord           `json:"records"`
	Stats        []ColumnStats                  `json:"stats"`
	TopMax       []PitcherSpeedRecord           `json:"top_max"`
	TopAvg       []PitcherSpeedRecord           `json:"top_avg"`
	Histograms   map[SpeedColumn][]HistogramBin `json:"histograms"`
	HardThrowers []PitcherSpeedRecord           `json:"hard_throwers"`
	FastAverages []PitcherSpeedRecord           `json:"fast_averages"`
	Correlation  *float64                       `json:"correlation"`
}
