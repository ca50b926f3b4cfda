// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/macromol/getpdb/pkg/types"
)

// alphafoldAPIBase is the AlphaFold prediction metadata endpoint. Declared
// as a var so tests can substitute an httptest server.
// See https://alphafold.ebi.ac.uk/api-docs.
var alphafoldAPIBase = "https://alphafold.ebi.ac.uk/api/prediction/"

// alphafoldPrediction captures the per-type file URLs from a prediction
// metadata entry.
type alphafoldPrediction struct {
	CIFURL  string `json:"cifUrl"`
	BCIFURL string `json:"bcifUrl"`
	PDBURL  string `json:"pdbUrl"`
}

// AlphaFoldHost fetches predicted structures from the AlphaFold database
// by UniProt accession. Retrieval is two-step: the prediction metadata
// JSON carries the actual file URL for each type.
type AlphaFoldHost struct {
	Client *http.Client
}

// Name returns the host identifier.
func (h *AlphaFoldHost) Name() string { return "alphafold" }

// Capabilities lists the file types AlphaFold serves.
func (h *AlphaFoldHost) Capabilities() []string {
	return []string{"cif", "bcif", "pdb"}
}

// Fetch resolves the prediction metadata for the accession, then downloads
// the type-specific file as plain text lines.
func (h *AlphaFoldHost) Fetch(ctx context.Context, identifier, fileType string, cfg types.FetchConfig) ([]string, error) {
	metaURL := alphafoldAPIBase + strings.ToUpper(identifier)

	body, err := get(ctx, h.Client, metaURL, cfg.UserAgent)
	if err != nil {
		return nil, err
	}

	var predictions []alphafoldPrediction
	if err := json.Unmarshal(body, &predictions); err != nil {
		return nil, fmt.Errorf("parsing AlphaFold response: %w", err)
	}
	if len(predictions) == 0 {
		return nil, fmt.Errorf("no AlphaFold prediction for %s", identifier)
	}

	var fileURL string
	switch strings.ToLower(fileType) {
	case "cif":
		fileURL = predictions[0].CIFURL
	case "bcif":
		fileURL = predictions[0].BCIFURL
	case "pdb":
		fileURL = predictions[0].PDBURL
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFileType, fileType)
	}
	if fileURL == "" {
		return nil, fmt.Errorf("AlphaFold prediction for %s has no %s file", identifier, fileType)
	}

	data, err := get(ctx, h.Client, fileURL, cfg.UserAgent)
	if err != nil {
		return nil, err
	}
	return splitLines(data), nil
}
