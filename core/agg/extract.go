// Package agg has extraction and aggregation logic for pitch speed data.
package agg

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/huangsam/fastball/schema"
)

// ErrMalformedFeed is wrapped by every warning returned from ExtractGameSpeeds.
var ErrMalformedFeed = errors.New("malformed game feed")

// unknownPitcherPrefix prefixes the synthesized name of a pitcher without roster or matchup name.
const unknownPitcherPrefix = "Unknown_Pitcher_Id_"

// Extractor turns one raw game feed into per-pitcher speed observations.
type Extractor struct {
	fastballCodes map[string]struct{}
}

// NewExtractor returns an Extractor treating the given pitch-type codes as fastballs.
// An empty list selects schema.DefaultFastballCodes.
func NewExtractor(fastballCodes []string) *Extractor {
	if len(fastballCodes) == 0 {
		fastballCodes = schema.DefaultFastballCodes
	}
	codes := make(map[string]struct{}, len(fastballCodes))
	for _, c := range fastballCodes {
		codes[c] = struct{}{}
	}
	return &Extractor{fastballCodes: codes}
}

// FastballCodes returns the configured fastball codes in sorted order.
func (e *Extractor) FastballCodes() []string {
	codes := make([]string, 0, len(e.fastballCodes))
	for c := range e.fastballCodes {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// IsFastball reports whether a pitch-type code counts toward the fastball average.
func (e *Extractor) IsFastball(code string) bool {
	_, ok := e.fastballCodes[code]
	return ok
}

// ExtractGameSpeeds extracts speeds from a raw feed using the default fastball codes.
func ExtractGameSpeeds(raw []byte) (schema.GameSpeeds, error) {
	return NewExtractor(nil).ExtractGameSpeeds(raw)
}

// ExtractGameSpeeds walks every play of a raw game feed and records, per resolved
// pitcher name, the maximum pitch speed and the list of fastball speeds.
// A feed that cannot be decoded or has no play list yields empty maps and a
// warning wrapping ErrMalformedFeed. It never panics on unexpected shapes.
func (e *Extractor) ExtractGameSpeeds(raw []byte) (schema.GameSpeeds, error) {
	speeds := schema.NewGameSpeeds()

	var feed schema.GameFeed
	if err := json.Unmarshal(raw, &feed); err != nil {
		return speeds, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
	}

	plays, ok := allPlays(feed.LiveData)
	if !ok {
		return speeds, fmt.Errorf("%w: could not find allPlays in game %d", ErrMalformedFeed, feed.GamePk)
	}

	roster := buildRoster(feed)
	for _, play := range plays {
		if len(play.PlayEvents) == 0 {
			continue
		}
		name := resolvePitcherName(play.Matchup.Pitcher, roster)
		for _, event := range play.PlayEvents {
			e.recordPitch(speeds, name, event)
		}
	}

	return speeds, nil
}

// recordPitch folds one event into the game speeds if it is a measured, classified pitch.
func (e *Extractor) recordPitch(speeds schema.GameSpeeds, name string, event schema.PitchEvent) {
	speed := event.PitchData.StartSpeed
	code := event.Details.Code()
	if !speed.Valid || speed.Value < 0 || code == "" {
		return
	}

	if current, seen := speeds.MaxSpeed[name]; !seen || speed.Value > current {
		speeds.MaxSpeed[name] = speed.Value
	}
	if e.IsFastball(code) {
		speeds.FastballSpeeds[name] = append(speeds.FastballSpeeds[name], speed.Value)
	}
}

// allPlays returns liveData.allPlays, falling back to liveData.plays.allPlays.
func allPlays(live schema.LiveData) ([]schema.Play, bool) {
	if live.AllPlays != nil {
		return live.AllPlays, true
	}
	if live.Plays != nil && live.Plays.AllPlays != nil {
		return live.Plays.AllPlays, true
	}
	return nil, false
}

// buildRoster maps player id to full name. liveData.players takes precedence
// over gameData.players.
func buildRoster(feed schema.GameFeed) map[int64]string {
	roster := make(map[int64]string, len(feed.LiveData.Players)+len(feed.GameData.Players))
	for _, players := range []map[string]schema.RosterEntry{feed.LiveData.Players, feed.GameData.Players} {
		for _, entry := range players {
			id, name := entry.Identity()
			if id == 0 || name == "" {
				continue
			}
			if _, exists := roster[id]; !exists {
				roster[id] = name
			}
		}
	}
	return roster
}

// resolvePitcherName resolves identity: roster name, then matchup name, then a placeholder.
func resolvePitcherName(pitcher schema.PersonRef, roster map[int64]string) string {
	if pitcher.ID != 0 {
		if name, ok := roster[pitcher.ID]; ok {
			return name
		}
	}
	if pitcher.FullName != "" {
		return pitcher.FullName
	}
	if pitcher.ID != 0 {
		return unknownPitcherPrefix + strconv.FormatInt(pitcher.ID, 10)
	}
	return unknownPitcherPrefix + "unknown"
}
