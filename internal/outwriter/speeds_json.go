package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/fastball/schema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// speedEntry is the value stored per pitcher in the speeds JSON document.
type speedEntry struct {
	MaxSpeed         float64 `json:"max_speed"`
	AvgFastballSpeed float64 `json:"avg_fastball_speed"`
}

// buildSpeedsMap keys records by pitcher, keeping their order.
func buildSpeedsMap(records []schema.PitcherSpeedRecord) *orderedmap.OrderedMap[string, speedEntry] {
	om := orderedmap.New[string, speedEntry](len(records))
	for _, r := range records {
		om.Set(r.Pitcher, speedEntry{MaxSpeed: r.MaxSpeed, AvgFastballSpeed: r.AvgFastballSpeed})
	}
	return om
}

// WriteSpeedsJSON writes records as one object mapping pitcher to speeds.
// Keys appear in the order of records, so ranked input stays ranked on disk.
func WriteSpeedsJSON(w io.Writer, records []schema.PitcherSpeedRecord) error {
	return writeJSON(w, buildSpeedsMap(records))
}

// ReadSpeedsJSON decodes a speeds JSON document, preserving key order.
func ReadSpeedsJSON(r io.Reader) ([]schema.PitcherSpeedRecord, error) {
	om := orderedmap.New[string, speedEntry]()
	if err := json.NewDecoder(r).Decode(om); err != nil {
		return nil, fmt.Errorf("failed to decode speeds JSON: %w", err)
	}

	records := make([]schema.PitcherSpeedRecord, 0, om.Len())
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		records = append(records, schema.PitcherSpeedRecord{
			Pitcher:          pair.Key,
			MaxSpeed:         pair.Value.MaxSpeed,
			AvgFastballSpeed: pair.Value.AvgFastballSpeed,
		})
	}
	return records, nil
}

// LoadSpeedsFile reads a speeds JSON file written by the speeds command.
func LoadSpeedsFile(path string) ([]schema.PitcherSpeedRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open speeds file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return ReadSpeedsJSON(file)
}
