package schema

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// GameFeed is the subset of a live game feed needed for speed extraction.
type GameFeed struct {
	GamePk   int64    `json:"gamePk"`
	GameData GameData `json:"gameData"`
	LiveData LiveData `json:"liveData"`
}

// GameData holds game metadata. Live feeds carry the full roster here.
type GameData struct {
	Players map[string]RosterEntry `json:"players"`
}

// LiveData holds the play-by-play section of a game feed.
// Plays may appear either directly under allPlays or nested under plays.allPlays.
type LiveData struct {
	AllPlays []Play                 `json:"allPlays"`
	Plays    *PlayList              `json:"plays"`
	Players  map[string]RosterEntry `json:"players"`
}

// PlayList is the nested plays container.
type PlayList struct {
	AllPlays []Play `json:"allPlays"`
}

// Play is one plate appearance with its pitcher and events.
type Play struct {
	Matchup    Matchup      `json:"matchup"`
	PlayEvents []PitchEvent `json:"playEvents"`
}

// Matchup identifies the batter/pitcher pair of a play.
type Matchup struct {
	Pitcher PersonRef `json:"pitcher"`
}

// PersonRef is a reference to a player by id and name.
type PersonRef struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

// RosterEntry is one player record. The person may be nested or inline.
type RosterEntry struct {
	ID       int64     `json:"id"`
	FullName string    `json:"fullName"`
	Person   PersonRef `json:"person"`
}

// Identity returns the id and name of the roster entry, preferring the nested person.
func (r RosterEntry) Identity() (int64, string) {
	if r.Person.ID != 0 {
		name := r.Person.FullName
		if name == "" {
			name = r.FullName
		}
		return r.Person.ID, name
	}
	return r.ID, r.FullName
}

// PitchEvent is a single event within a play. Only pitches carry pitch data.
type PitchEvent struct {
	PitchData PitchData    `json:"pitchData"`
	Details   PitchDetails `json:"details"`
}

// PitchData holds the measured pitch attributes.
type PitchData struct {
	StartSpeed SpeedValue `json:"startSpeed"`
}

// PitchDetails holds the pitch classification.
type PitchDetails struct {
	Type *PitchType `json:"type"`
}

// PitchType holds the pitch-type code, e.g. FF or CU.
type PitchType struct {
	Code string `json:"code"`
}

// Code returns the pitch-type code or an empty string.
func (d PitchDetails) Code() string {
	if d.Type == nil {
		return ""
	}
	return d.Type.Code
}

// SpeedValue is a tolerant numeric field. It accepts JSON numbers and
// numeric strings, and records whether a usable finite value was present.
type SpeedValue struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler. Unusable input leaves the value invalid.
func (s *SpeedValue) UnmarshalJSON(data []byte) error {
	*s = SpeedValue{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var v float64
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		parsed, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return nil
		}
		v = parsed
	} else if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	s.Value = v
	s.Valid = true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s SpeedValue) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}
