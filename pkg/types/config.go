package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "getpdb/0.2").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// InsecureSkipVerify disables TLS certificate verification. Needed
	// behind some institutional proxies that re-sign traffic.
	InsecureSkipVerify bool `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

// FetchConfig holds settings for the fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// FileType is the requested structure file format (cif, pdb, sdf, ...).
	// Empty means infer from the identifier length.
	FileType string `json:"file_type" yaml:"file_type"`

	// OutputDir is the directory output files are written to. Empty means
	// the current directory. Created on demand.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// DownloadDelay is the delay between consecutive identifiers.
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`
}

// HistoryConfig holds settings for the fetch history ledger.
type HistoryConfig struct {
	// HistoryDir is the directory holding the ledger database.
	HistoryDir string `json:"history_dir" yaml:"history_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
