package model

import "time"

// Run statuses.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// RunRecord is one invocation of the chart run as kept in the history store.
type RunRecord struct {
	ID         string    `json:"id"`
	Command    string    `json:"command"`
	Status     string    `json:"status"`
	RowCount   int       `json:"row_count"`
	ChartCount int       `json:"chart_count"`
	OutputDir  string    `json:"output_dir,omitempty"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Acquisition is one download attempt of the dataset.
type Acquisition struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	Success   bool      `json:"success"`
	Bytes     int64     `json:"bytes"`
	Error     string    `json:"error,omitempty"`
	Duration  int64     `json:"duration_ms"`
	CreatedAt time.Time `json:"created_at"`
}
