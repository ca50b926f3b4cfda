// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"net/http"
	"strings"

	"github.com/macromol/getpdb/pkg/types"
)

// pubchemAPIBase is the PubChem PUG-REST compound endpoint. Declared as a
// var so tests can substitute an httptest server.
// See https://pubchem.ncbi.nlm.nih.gov/docs/pug-rest.
var pubchemAPIBase = "https://pubchem.ncbi.nlm.nih.gov/rest/pug/compound/CID/"

// PubChemHost fetches compound records from PubChem by CID, requesting
// the 3-D record variant.
type PubChemHost struct {
	Client *http.Client
}

// Name returns the host identifier.
func (h *PubChemHost) Name() string { return "pubchem" }

// Capabilities lists the file types PubChem serves.
func (h *PubChemHost) Capabilities() []string {
	return []string{"sdf", "json", "xml", "asnt"}
}

// Fetch downloads the compound record as plain text lines.
func (h *PubChemHost) Fetch(ctx context.Context, identifier, fileType string, cfg types.FetchConfig) ([]string, error) {
	url := pubchemAPIBase + identifier + "/record/" + strings.ToUpper(fileType) + "?record_type=3d"

	body, err := get(ctx, h.Client, url, cfg.UserAgent)
	if err != nil {
		return nil, err
	}
	return splitLines(body), nil
}
