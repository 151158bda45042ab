package domain

import "time"

// ExportRecord describes one file written by the export phase.
type ExportRecord struct {
	Path      string     `json:"path,omitzero"`
	Digest    string     `json:"digest,omitzero"`
	Size      int        `json:"size,omitzero"`
	Source    SourceKind `json:"source,omitzero"`
	Timestamp time.Time  `json:"timestamp,omitzero"`
}
