// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/macromol/getpdb/pkg/types"
)

// Base URLs for the RCSB download services. Declared as vars so tests can
// substitute httptest servers.
// See https://www.rcsb.org/docs/programmatic-access/file-download-services.
var (
	rcsbDownloadBase = "https://files.rcsb.org/download/"
	rcsbLigandBase   = "https://files.rcsb.org/ligands/download/"
)

// ArchiveHost fetches entry files from the RCSB PDB archive. Files are
// served gzip-compressed.
type ArchiveHost struct {
	Client *http.Client
}

// Name returns the host identifier.
func (h *ArchiveHost) Name() string { return "rcsb" }

// Capabilities lists the file types the archive serves.
func (h *ArchiveHost) Capabilities() []string {
	return []string{"pdb", "cif", "bcif", "xml"}
}

// Fetch downloads <ID>.<type>.gz and returns the decompressed text lines.
func (h *ArchiveHost) Fetch(ctx context.Context, identifier, fileType string, cfg types.FetchConfig) ([]string, error) {
	url := rcsbDownloadBase + strings.ToUpper(identifier) + "." + strings.ToLower(fileType) + ".gz"

	body, err := get(ctx, h.Client, url, cfg.UserAgent)
	if err != nil {
		return nil, err
	}

	zr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", url, err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", url, err)
	}
	return splitLines(data), nil
}

// LigandHost fetches chemical component files from the RCSB ligand
// archive. SDF and MOL2 files come in two flavors: "model" (as observed
// in the crystal) and "ideal" (energy-relaxed); this host requests the
// ideal flavor for those types.
type LigandHost struct {
	Client *http.Client
}

// Name returns the host identifier.
func (h *LigandHost) Name() string { return "rcsb-ligand" }

// Capabilities lists the file types the ligand archive serves.
func (h *LigandHost) Capabilities() []string {
	return []string{"cif", "sdf", "mol2"}
}

// Fetch downloads the component file as plain text lines.
func (h *LigandHost) Fetch(ctx context.Context, identifier, fileType string, cfg types.FetchConfig) ([]string, error) {
	ft := strings.ToLower(fileType)
	stem := strings.ToUpper(identifier)
	if ft == "sdf" || ft == "mol2" {
		stem += "_ideal"
	}
	url := rcsbLigandBase + stem + "." + ft

	body, err := get(ctx, h.Client, url, cfg.UserAgent)
	if err != nil {
		return nil, err
	}
	return splitLines(body), nil
}
