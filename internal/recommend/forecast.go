package recommend

import (
	"strconv"
	"strings"
	"time"

	"github.com/five82/shoplens/internal/resulttree"
)

const (
	forecastDateLayout = "2006-01-02"
	forecastTimeLayout = "2006-01-02 15:04:05"
)

// ForecastByDate turns the forecast records ([{ds, yhat}, ...]) into a flat
// date -> predicted sales tree, in record order. Records sharing a day are
// keyed by their full timestamp instead. Trees of any other shape are
// returned unchanged.
func ForecastByDate(tree *resulttree.Tree) *resulttree.Tree {
	if tree.Len() == 0 {
		return tree
	}

	type record struct {
		raw   string
		when  time.Time
		ok    bool
		value string
	}
	records := make([]record, 0, tree.Len())
	perDay := make(map[string]int, tree.Len())
	for _, row := range tree.Entries {
		if row.IsLeaf() {
			return tree
		}
		ds, okDate := row.Child.Get("ds")
		yhat, okValue := row.Child.Get("yhat")
		if !okDate || !okValue || !ds.IsLeaf() || !yhat.IsLeaf() {
			return tree
		}
		when, ok := parseForecastTime(ds.Value)
		if ok {
			perDay[when.Format(forecastDateLayout)]++
		}
		records = append(records, record{raw: strings.TrimSpace(ds.Value), when: when, ok: ok, value: formatForecastValue(yhat.Value)})
	}

	out := resulttree.New()
	for _, r := range records {
		key := r.raw
		if r.ok {
			key = r.when.Format(forecastDateLayout)
			if perDay[key] > 1 {
				key = r.when.Format(forecastTimeLayout)
			}
		}
		out.Set(key, r.value)
	}
	return out
}

// parseForecastTime accepts epoch milliseconds or an ISO timestamp.
func parseForecastTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", forecastTimeLayout, time.RFC1123} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func formatForecastValue(raw string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return raw
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
