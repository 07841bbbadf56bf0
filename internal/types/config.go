package types

type RunMode string

const (
	// ModeLocal runs the API server and the in-process billing timer together
	ModeLocal RunMode = "local"
	// ModeAPI is the mode for running just the API server
	ModeAPI RunMode = "api"
	// ModeScheduler runs only the in-process billing timer
	ModeScheduler RunMode = "scheduler"
	// ModeTemporalWorker runs the temporal worker that executes billing run workflows
	ModeTemporalWorker RunMode = "temporal_worker"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// OutputMode selects where rendered invoice documents are persisted during batch runs
type OutputMode string

const (
	OutputModeNone  OutputMode = "none"
	OutputModeLocal OutputMode = "local"
	OutputModeS3    OutputMode = "s3"
)

// TemplateSourceKind selects where the invoice template is loaded from
type TemplateSourceKind string

const (
	TemplateSourceFile TemplateSourceKind = "file"
	TemplateSourceS3   TemplateSourceKind = "s3"
)
