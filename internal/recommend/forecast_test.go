package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/shoplens/internal/resulttree"
)

func TestForecastByDate_FlattensRecords(t *testing.T) {
	tree, err := resulttree.Parse([]byte(`[
		{"ds": 1323475200000, "yhat": 1523.4567},
		{"ds": "2011-12-11T00:00:00", "yhat": 99}
	]`))
	require.NoError(t, err)

	got := ForecastByDate(tree)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "2011-12-10", got.Entries[0].Key)
	assert.Equal(t, "1523.46", got.Entries[0].Value)
	assert.Equal(t, "2011-12-11", got.Entries[1].Key)
	assert.Equal(t, "99.00", got.Entries[1].Value)
}

func TestForecastByDate_OtherShapesUnchanged(t *testing.T) {
	for _, payload := range []string{
		`{"error": "Data not uploaded or processed"}`,
		`[{"ds": 1}, {"ds": 2, "yhat": 3}]`,
		`[1, 2]`,
	} {
		tree, err := resulttree.Parse([]byte(payload))
		require.NoError(t, err)
		assert.Same(t, tree, ForecastByDate(tree), payload)
	}
	assert.Nil(t, ForecastByDate(nil))
}

func TestForecastByDate_SameDayKeepsTimestamps(t *testing.T) {
	tree, err := resulttree.Parse([]byte(`[
		{"ds": 1323475200000, "yhat": 10},
		{"ds": 1323496800000, "yhat": 20},
		{"ds": 1323561600000, "yhat": 30}
	]`))
	require.NoError(t, err)

	got := ForecastByDate(tree)
	require.Equal(t, 3, got.Len())
	assert.Equal(t, "2011-12-10 00:00:00", got.Entries[0].Key)
	assert.Equal(t, "10.00", got.Entries[0].Value)
	assert.Equal(t, "2011-12-10 06:00:00", got.Entries[1].Key)
	assert.Equal(t, "20.00", got.Entries[1].Value)
	assert.Equal(t, "2011-12-11", got.Entries[2].Key)
}

func TestForecastByDate_UnparsedDatesKeptVerbatim(t *testing.T) {
	tree, err := resulttree.Parse([]byte(`[{"ds": "week 50", "yhat": 1.5}]`))
	require.NoError(t, err)

	got := ForecastByDate(tree)
	entry, ok := got.Get("week 50")
	require.True(t, ok)
	assert.Equal(t, "1.50", entry.Value)
}
