package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Speed label constants.
const (
	EliteValue   = "Elite"   // Elite velocity
	PlusValue    = "Plus"    // Plus velocity
	AverageValue = "Average" // Average velocity
	SoftValue    = "Soft"    // Below average velocity
)

// Color variables for console output.
var (
	EliteColor   = color.New(color.FgRed, color.Bold)     // EliteColor represents top-end heat.
	PlusColor    = color.New(color.FgMagenta, color.Bold) // PlusColor represents strong, distinct velocity.
	AverageColor = color.New(color.FgYellow)              // AverageColor represents league-typical velocity.
	SoftColor    = color.New(color.FgCyan)                // SoftColor represents finesse pitchers.
)

// GetPlainLabel returns a plain text label for a pitch speed in mph.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(speed float64) string {
	switch {
	case speed >= 100:
		return EliteValue
	case speed >= 97:
		return PlusValue
	case speed >= 93:
		return AverageValue
	default:
		return SoftValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(speed float64) string {
	text := GetPlainLabel(speed)

	switch text {
	case EliteValue:
		return EliteColor.Sprint(text)
	case PlusValue:
		return PlusColor.Sprint(text)
	case AverageValue:
		return AverageColor.Sprint(text)
	default: // "Soft"
		return SoftColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output.
// An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for feed cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".fastball_cache.db"
	}
	return filepath.Join(homeDir, ".fastball_cache.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".fastball_analysis.db"
	}
	return filepath.Join(homeDir, ".fastball_analysis.db")
}

// TruncateName truncates a pitcher name to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one character.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
