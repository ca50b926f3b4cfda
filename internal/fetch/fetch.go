// Package fetch resolves molecular structure identifiers against public
// databases with ordered host fallback and writes the retrieved files.
package fetch

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/macromol/getpdb/pkg/types"
)

// Ledger records fetch outcomes. *history.Store implements it.
type Ledger interface {
	Append(ctx context.Context, rec *types.FetchRecord) error
}

// BatchResult holds the outcome of a batch fetch run.
type BatchResult struct {
	Fetched int
	Failed  int
	Records []*types.FetchRecord
}

// Total returns the total number of identifiers processed.
func (r BatchResult) Total() int {
	return r.Fetched + r.Failed
}

// HasFailures reports whether any identifiers failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FetchOne resolves a single identifier and writes the payload to
// <identifier>.<type> under cfg.OutputDir. The returned record describes
// the outcome even when err is non-nil, so callers can ledger failures.
func FetchOne(ctx context.Context, hosts []Host, identifier string, cfg types.FetchConfig, log zerolog.Logger) (*types.FetchRecord, error) {
	fileType := cfg.FileType
	if fileType == "" {
		fileType = DefaultType(identifier)
	}
	fileType = strings.ToLower(fileType)

	rec := &types.FetchRecord{
		Identifier: identifier,
		FileType:   fileType,
		Status:     types.StatusFailed,
		Timestamp:  time.Now().UTC(),
	}

	lines, host, err := Resolve(ctx, identifier, fileType, hosts, cfg, log)
	if err != nil {
		rec.Error = err.Error()
		return rec, err
	}

	output := identifier + "." + fileType
	if cfg.OutputDir != "" {
		output = filepath.Join(cfg.OutputDir, output)
	}

	log.Info().
		Str("identifier", identifier).
		Str("host", host).
		Str("output", output).
		Msg("writing output")

	if err := writeLines(lines, output, cfg.OutputDir); err != nil {
		rec.Error = err.Error()
		return rec, err
	}

	rec.Host = host
	rec.OutputPath = output
	rec.Lines = len(lines)
	rec.Status = types.StatusFetched
	return rec, nil
}

// FetchBatch processes multiple identifiers sequentially. It continues
// after individual failures and applies a delay between consecutive
// identifiers. Each outcome is appended to the ledger when one is given.
func FetchBatch(ctx context.Context, hosts []Host, identifiers []string, cfg types.FetchConfig, ledger Ledger, log zerolog.Logger) BatchResult {
	var result BatchResult
	for i, id := range identifiers {
		if i > 0 && cfg.DownloadDelay > 0 {
			time.Sleep(cfg.DownloadDelay)
		}

		rec, err := FetchOne(ctx, hosts, id, cfg, log)
		if err != nil {
			log.Error().Err(err).Str("identifier", id).Msg("fetch failed")
			result.Failed++
		} else {
			result.Fetched++
		}
		result.Records = append(result.Records, rec)

		if ledger != nil {
			if err := ledger.Append(ctx, rec); err != nil {
				log.Warn().Err(err).Str("identifier", id).Msg("could not record fetch in history")
			}
		}
	}

	log.Info().
		Int("fetched", result.Fetched).
		Int("failed", result.Failed).
		Int("total", result.Total()).
		Msg("batch finished")
	return result
}

// writeLines writes each line with a trailing newline to path, creating
// dir first when one is specified. Existing files are truncated.
func writeLines(lines []string, path, dir string) error {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
