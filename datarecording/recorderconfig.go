package datarecording

import "fmt"

// The recorder backends.
const (
	BackendSQLite     = "sqlite"
	BackendClickHouse = "clickhouse"
)

// RecorderConfig selects and configures a DataRecorder backend.
type RecorderConfig struct {
	// Type is BackendSQLite or BackendClickHouse. Empty means SQLite.
	Type string

	// Path is the SQLite file name without extension.
	Path string

	// ConnStr is the ClickHouse DSN.
	ConnStr string

	BatchSize int
}

// NewWithConfig creates the DataRecorder the configuration describes.
func NewWithConfig(cfg RecorderConfig) DataRecorder {
	switch cfg.Type {
	case BackendSQLite, "":
		r := New(cfg.Path)
		if cfg.BatchSize > 0 {
			r.(*sqliteWriter).batchSize = cfg.BatchSize
		}

		return r
	case BackendClickHouse:
		return NewClickHouse(cfg.ConnStr, cfg.BatchSize)
	default:
		panic(fmt.Sprintf("unknown recorder type %q", cfg.Type))
	}
}
