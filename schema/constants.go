package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the storage backend for feed caching and run tracking.
	DatabaseBackend string

	// SpeedColumn names one of the two aggregated speed metrics.
	SpeedColumn string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
	XLSXOut    OutputMode = "xlsx"
)

// All storage backends supported. File and Redis only apply to the feed cache.
const (
	FileBackend       DatabaseBackend = "file" // default for feed cache
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	RedisBackend      DatabaseBackend = "redis"
	NoneBackend       DatabaseBackend = "none"
)

// Speed columns produced by the aggregation.
const (
	MaxSpeedColumn         SpeedColumn = "max_speed"
	AvgFastballSpeedColumn SpeedColumn = "avg_fastball_speed"
)

// Stats API defaults.
const (
	DefaultBaseURL   = "https://statsapi.mlb.com"
	DefaultSportID   = 1
	DefaultUserAgent = "fastball/1.0 (+https://github.com/huangsam/fastball)"
	DefaultCacheDir  = "mlb_data"
)

// DefaultFastballCodes are the pitch-type codes treated as fastballs:
// four-seam, two-seam, sinker and cutter.
var DefaultFastballCodes = []string{"FF", "FT", "SI", "FC"}

// AllSpeedColumns lists both speed columns in report order.
var AllSpeedColumns = []SpeedColumn{MaxSpeedColumn, AvgFastballSpeedColumn}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
	XLSXOut:    {},
}

// ValidCacheBackends lists all valid feed cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	FileBackend:       {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	RedisBackend:      {},
	NoneBackend:       {},
}

// ValidAnalysisBackends lists all valid run tracking backends.
var ValidAnalysisBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
