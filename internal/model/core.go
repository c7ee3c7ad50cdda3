package model

import "time"

// RunSpec is the fixed selection a run charts.
type RunSpec struct {
	// Countries are compared side by side.
	Countries []string `json:"countries"`
	// SingleCountries each get a cases chart and a deaths chart.
	SingleCountries []string `json:"single_countries"`
	// SnapshotDate is the day of the total deaths snapshot.
	SnapshotDate time.Time `json:"snapshot_date"`
	// DeathLines adds the new deaths line chart.
	DeathLines bool `json:"death_lines"`
}

// DefaultRunSpec returns the selection charted by every run.
func DefaultRunSpec() RunSpec {
	return RunSpec{
		Countries:       []string{"Hungary", "Austria", "Slovakia", "Czechia"},
		SingleCountries: []string{"Hungary", "Austria"},
		SnapshotDate:    time.Date(2021, time.March, 11, 0, 0, 0, 0, time.UTC),
	}
}
