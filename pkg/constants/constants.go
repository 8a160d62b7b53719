// Package constants provides shared constants for the finance-calculators application.
package constants

// DateTimeLayout is the month format accepted for schedule start dates and
// used when labelling monthly rows.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxTenureMonths is the longest tenure any schedule engine simulates.
	MaxTenureMonths = 1200

	// ExhaustionHorizonMonths caps open-ended withdrawal simulations at 100 years.
	ExhaustionHorizonMonths = MaxTenureMonths
)

// Contribution and withdrawal intervals in months.
const (
	MonthlyInterval    = 1
	QuarterlyInterval  = 3
	HalfYearlyInterval = 6
	YearlyInterval     = 12
)

// Slider tier boundaries expressed as positions on a 0-100 track.
const (
	SliderFirstTierEnd  = 40.0
	SliderSecondTierEnd = 70.0
	SliderMaxPosition   = 100.0
)

// Public Provident Fund rules.
const (
	PPFMinYearlyDeposit = 500.0
	PPFMaxYearlyDeposit = 150000.0
	PPFMinTenureMonths  = 15 * MonthsPerYear
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "FINCALC"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// ServerEngineNet serves requests with net/http
	ServerEngineNet = "net"

	// ServerEngineFastHTTP serves requests with fasthttp
	ServerEngineFastHTTP = "fasthttp"
)

// History backends
const (
	HistoryBackendMemory = "memory"
	HistoryBackendSQLite = "sqlite"
	HistoryBackendRedis  = "redis"

	// DefaultHistoryKeyPrefix namespaces history keys in Redis
	DefaultHistoryKeyPrefix = "fincalc:history"
)
