// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/macromol/getpdb/internal/httputil"
	"github.com/macromol/getpdb/pkg/types"
)

// Default file types by identifier length. Codes shorter than four
// characters are compound/ligand codes (CCD, PubChem CID); longer codes
// are structure entries or accessions.
const (
	defaultSmallType = "sdf"
	defaultLargeType = "cif"
)

var (
	// ErrInvalidFileType is returned by a host whose internal URL mapping
	// does not know the requested type.
	ErrInvalidFileType = errors.New("invalid file type")

	// ErrAllHostsExhausted is returned when no host produced a payload.
	ErrAllHostsExhausted = errors.New("no host could serve the request")
)

// DefaultType infers the file type from the identifier length when none
// is requested explicitly.
func DefaultType(identifier string) string {
	if len(identifier) < 4 {
		return defaultSmallType
	}
	return defaultLargeType
}

// Host fetches structure files from one external database. Each host
// (RCSB archive, RCSB ligand, PubChem, AlphaFold) implements this
// interface per the Strategy pattern.
type Host interface {
	Name() string

	// Capabilities lists the file types this host can serve.
	Capabilities() []string

	// Fetch retrieves identifier as fileType and returns the payload as
	// text lines.
	Fetch(ctx context.Context, identifier, fileType string, cfg types.FetchConfig) ([]string, error)
}

// Registry returns the hosts in fallback priority order. The order is
// fixed: the RCSB archive is authoritative for experimental structures,
// the ligand archive for chemical components, PubChem for compounds, and
// AlphaFold last because its entries are predictions.
func Registry(client *http.Client) []Host {
	return []Host{
		&ArchiveHost{Client: client},
		&LigandHost{Client: client},
		&PubChemHost{Client: client},
		&AlphaFoldHost{Client: client},
	}
}

// Supports reports whether the host can serve the given file type.
func Supports(h Host, fileType string) bool {
	fileType = strings.ToLower(fileType)
	for _, t := range h.Capabilities() {
		if t == fileType {
			return true
		}
	}
	return false
}

// Resolve tries each host in order until one returns a payload. Hosts
// that do not support the file type are skipped without a network call.
// A failed attempt (network error, non-2xx status, decode failure) is
// logged and the next host is tried. When every host has been skipped or
// has failed, the error wraps ErrAllHostsExhausted.
func Resolve(ctx context.Context, identifier, fileType string, hosts []Host, cfg types.FetchConfig, log zerolog.Logger) ([]string, string, error) {
	for _, h := range hosts {
		if !Supports(h, fileType) {
			log.Debug().
				Str("host", h.Name()).
				Str("type", fileType).
				Msg("host does not support file type")
			continue
		}

		lines, err := h.Fetch(ctx, identifier, fileType, cfg)
		if err != nil {
			log.Warn().
				Err(err).
				Str("host", h.Name()).
				Str("identifier", identifier).
				Msg("fetch attempt failed")
			continue
		}
		return lines, h.Name(), nil
	}
	return nil, "", fmt.Errorf("could not fetch %s.%s: %w",
		identifier, strings.ToLower(fileType), ErrAllHostsExhausted)
}

// get issues a GET request and returns the response body. Non-200
// responses are errors. Requests go through the 429 retry helper since
// PubChem rate-limits aggressively.
func get(ctx context.Context, client *http.Client, url, userAgent string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// splitLines splits a text payload into lines without the newlines.
func splitLines(data []byte) []string {
	return strings.Split(string(data), "\n")
}
