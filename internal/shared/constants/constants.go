package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	HeaderXRequestID = "X-Request-ID"

	ContextKeyRequestID = "request_id"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeZIP  = "application/zip"

	// Business timestamp formats used by exports
	ExportDisplayTimeFormat = "02/01/2006 15:04"
	ExportTableTimeFormat   = "2006-01-02 15:04:05"
	ExportFileStampFormat   = "20060102_150405"
)
