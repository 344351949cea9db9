package state

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/five82/shoplens/internal/resulttree"
)

func forecastTree(values ...string) *resulttree.Tree {
	tree := resulttree.New()
	for i, v := range values {
		row := resulttree.New()
		row.Set("ds", fmt.Sprintf("2011-12-%02d", i+1))
		row.Set("yhat", v)
		tree.SetChild(strconv.Itoa(i), row)
	}
	return tree
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.Update(forecastTree("10.5", "11.0"), nil)

	snap := s.Snapshot()
	if !snap.HasForecast || snap.Forecast.Len() != 2 {
		t.Fatalf("snapshot forecast = %#v, want 2 rows", snap.Forecast)
	}
	if !snap.Reachable {
		t.Fatalf("Reachable = false, want true after success")
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Forecast.Entries[0].Child.Set("yhat", "999")
	snap2 := s.Snapshot()
	if got, _ := snap2.Forecast.Entries[0].Child.Get("yhat"); got.Value != "10.5" {
		t.Fatalf("Snapshot should clone forecast; got %q want 10.5", got.Value)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(forecastTree("1"), nil)
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if !reflect.DeepEqual(snap.Forecast, prev.Forecast) || !snap.HasForecast {
		t.Fatalf("forecast changed on error: got %#v want %#v", snap.Forecast, prev.Forecast)
	}
	if snap.Reachable {
		t.Fatalf("Reachable = true, want false after error")
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_NilForecastKeepsPopulatedPanel(t *testing.T) {
	var s Store

	s.Update(nil, nil)
	snap := s.Snapshot()
	if snap.HasForecast || snap.Forecast != nil {
		t.Fatalf("HasForecast = %v, want false before any forecast", snap.HasForecast)
	}
	if !snap.Reachable {
		t.Fatalf("Reachable = false, want true")
	}

	s.Update(forecastTree("3"), nil)
	s.Update(nil, nil)
	snap = s.Snapshot()
	if !snap.HasForecast || snap.Forecast.Len() != 1 {
		t.Fatalf("forecast dropped by empty update: %#v", snap.Forecast)
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	s.Update(nil, errors.New("fail 1"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(nil, errors.New("fail 2"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(forecastTree("1"), nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0 after success", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false after success")
	}
}
