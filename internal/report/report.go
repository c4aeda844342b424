// Package report turns a citation-validation pass over an inventory into a
// durable run record: one row per tested document with its fingerprint,
// per-level status and diagnostics, persisted to SQLite for later comparison
// between corpus revisions.
package report

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/mhartwick/ctskit/core/inventory"
	"github.com/mhartwick/ctskit/internal/logging"
	"github.com/mhartwick/ctskit/internal/sourceio"
)

// DocumentReport is the outcome of testing one document's citation scheme.
type DocumentReport struct {
	Filename    string   `json:"filename"`
	Path        string   `json:"path"`
	Fingerprint string   `json:"fingerprint,omitempty"`
	Status      []bool   `json:"status"`
	Warnings    []string `json:"warnings,omitempty"`
	Passed      bool     `json:"passed"`
}

// Run is one complete validation pass over an inventory.
type Run struct {
	ID         string           `json:"id"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Documents  []DocumentReport `json:"documents"`
}

// Passed reports whether every document in the run passed at every level.
func (r *Run) Passed() bool {
	for _, d := range r.Documents {
		if !d.Passed {
			return false
		}
	}
	return true
}

// Fingerprint computes the BLAKE3 content fingerprint used to detect whether
// a document changed between runs.
func Fingerprint(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Collect tests every document in the inventory and assembles the run record.
// Fingerprinting is best effort: a document whose bytes cannot be re-read
// keeps an empty fingerprint rather than failing the run.
func Collect(inv *inventory.Inventory, opener sourceio.Opener) (*Run, error) {
	if opener == nil {
		opener = sourceio.Local{}
	}

	run := &Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	results, err := inv.TestTextsCitation(false)
	if err != nil {
		return nil, err
	}
	for _, res := range results {
		doc := DocumentReport{
			Filename: res.Filename,
			Path:     res.Path,
			Status:   res.Result.Status,
			Warnings: res.Result.WarningMessages(),
			Passed:   res.Result.Passed(),
		}
		if data, err := sourceio.ReadAll(opener, res.Path); err == nil {
			doc.Fingerprint = Fingerprint(data)
		} else {
			logging.Warn("fingerprint skipped", "path", res.Path, "error", err)
		}
		run.Documents = append(run.Documents, doc)
	}

	run.FinishedAt = time.Now().UTC()
	return run, nil
}
