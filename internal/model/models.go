package model

import "time"

// ExportResult describes one file written by an export.
type ExportResult struct {
	Type       string    `json:"type"` // "html", "png", "xlsx"
	Path       string    `json:"path"`
	ChartCount int       `json:"chart_count"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
