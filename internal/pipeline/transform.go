package pipeline

import (
	"time"

	"github.com/hashicorp/go-set/v2"

	"owid-charts/internal/model"
)

// SelectLocation keeps the rows of exactly one country.
func SelectLocation(t *model.Table, country string) *model.Table {
	return t.Where(func(r model.Row) bool {
		return r.Location == country
	})
}

// SelectLocations keeps the rows whose country is in countries. Row order is
// the file order, not the order of countries.
func SelectLocations(t *model.Table, countries []string) *model.Table {
	wanted := set.From(countries)
	return t.Where(func(r model.Row) bool {
		return wanted.Contains(r.Location)
	})
}

// SelectDate keeps the rows indexed on the same calendar day as date.
func SelectDate(t *model.Table, date time.Time) *model.Table {
	y, m, d := date.Date()
	return t.Where(func(r model.Row) bool {
		if r.Date.IsZero() {
			return false
		}
		ry, rm, rd := r.Date.Date()
		return ry == y && rm == m && rd == d
	})
}
