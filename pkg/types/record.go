// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// FetchStatus indicates the outcome of a single identifier fetch.
type FetchStatus string

const (
	StatusFetched FetchStatus = "fetched"
	StatusFailed  FetchStatus = "failed"
)

// FetchRecord describes the outcome of one identifier fetch: which host
// served it, where the output went, and how it failed if it did.
type FetchRecord struct {
	// Identifier is the structure or compound code as supplied (e.g. "1lyz").
	Identifier string `json:"identifier" yaml:"identifier"`

	// FileType is the resolved file format, lower-cased (e.g. "cif").
	FileType string `json:"file_type" yaml:"file_type"`

	// Host names the database that served the payload. Empty on failure.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// OutputPath is the local path the payload was written to.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// Lines is the number of payload lines written.
	Lines int `json:"lines,omitempty" yaml:"lines,omitempty"`

	// Status is "fetched" or "failed".
	Status FetchStatus `json:"status" yaml:"status"`

	// Error holds the failure message when Status is "failed".
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Timestamp is when the fetch completed.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}
