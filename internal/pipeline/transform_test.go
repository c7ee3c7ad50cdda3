package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"owid-charts/internal/model"
)

func fixtureTable(t *testing.T) *model.Table {
	t.Helper()
	table, err := ReadTable(strings.NewReader(fixtureCSV))
	require.NoError(t, err)
	return table
}

func TestSelectLocation(t *testing.T) {
	table := fixtureTable(t)

	hungary := SelectLocation(table, "Hungary")
	assert.Equal(t, 3, hungary.Len())
	assert.Equal(t, []string{"Hungary"}, hungary.Locations())

	assert.Equal(t, 0, SelectLocation(table, "Atlantis").Len())
	assert.Equal(t, 8, table.Len(), "selections do not modify the source")
}

func TestSelectLocations(t *testing.T) {
	table := fixtureTable(t)

	selected := SelectLocations(table, []string{"Slovakia", "Hungary", "Atlantis"})
	assert.Equal(t, 4, selected.Len())
	assert.Equal(t, []string{"Hungary", "Slovakia"}, selected.Locations(), "file order is kept")
}

func TestSelectDate(t *testing.T) {
	table := fixtureTable(t)

	day := SelectDate(table, time.Date(2021, time.March, 11, 15, 30, 0, 0, time.UTC))
	assert.Equal(t, 5, day.Len())

	assert.Equal(t, 0, SelectDate(table, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)).Len())
}
