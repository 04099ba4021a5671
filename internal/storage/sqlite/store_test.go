package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/can-bmu/restaurant-monitor/internal/models"
	"github.com/can-bmu/restaurant-monitor/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(context.Background(), filepath.Join(t.TempDir(), "monitor.db"))
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleSnapshot(at time.Time) *models.Snapshot {
	return &models.Snapshot{
		Records: map[string]models.StatusRecord{
			"https://food.bolt.eu/ro-RO/325-bucharest/p/53203": {
				Location: models.Location{
					Platform: models.PlatformBolt,
					Name:     "Burgers Militari",
					Brand:    "Burgers",
					URL:      "https://food.bolt.eu/ro-RO/325-bucharest/p/53203",
				},
				Verdict: models.Verdict{
					Status: models.StatusOpen,
					Reason: "Bolt API: available for delivery",
					Source: models.SourceAPI,
				},
				CheckedAt: at,
			},
			"https://wolt.com/en/rou/bucharest/restaurant/x": {
				Location: models.Location{
					Platform: models.PlatformWolt,
					Name:     "Smash Test",
					Brand:    "Smash",
					URL:      "https://wolt.com/en/rou/bucharest/restaurant/x",
					Test:     true,
				},
				Verdict: models.Verdict{
					Status: models.StatusClosed,
					Reason: "HTTP 503",
					Source: models.SourceHTTPError,
				},
				CheckedAt: at,
			},
		},
		CompletedAt: at,
	}
}

func TestLoadSnapshotEmpty(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.LoadSnapshot(context.Background()); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	at := time.Date(2025, 8, 30, 18, 45, 12, 345678000, time.UTC)
	want := sampleSnapshot(at)
	if err := store.SaveSnapshot(ctx, want); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if !got.CompletedAt.Equal(want.CompletedAt) {
		t.Errorf("CompletedAt = %s, want %s", got.CompletedAt, want.CompletedAt)
	}
	if len(got.Records) != len(want.Records) {
		t.Fatalf("records = %d, want %d", len(got.Records), len(want.Records))
	}
	for url, wantRec := range want.Records {
		gotRec, ok := got.Records[url]
		if !ok {
			t.Errorf("missing record %s", url)
			continue
		}
		if gotRec.Platform != wantRec.Platform || gotRec.Name != wantRec.Name ||
			gotRec.Brand != wantRec.Brand || gotRec.Test != wantRec.Test {
			t.Errorf("%s: location mismatch: %+v", url, gotRec.Location)
		}
		if gotRec.Verdict != wantRec.Verdict {
			t.Errorf("%s: verdict = %+v, want %+v", url, gotRec.Verdict, wantRec.Verdict)
		}
		if !gotRec.CheckedAt.Equal(wantRec.CheckedAt) {
			t.Errorf("%s: CheckedAt = %s, want %s", url, gotRec.CheckedAt, wantRec.CheckedAt)
		}
	}
}

func TestSaveReplacesWholesale(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := sampleSnapshot(time.Now().UTC())
	if err := store.SaveSnapshot(ctx, first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	later := time.Now().UTC().Add(time.Minute)
	second := &models.Snapshot{
		Records: map[string]models.StatusRecord{
			"https://wolt.com/en/rou/bucharest/restaurant/y": {
				Location:  models.Location{Platform: models.PlatformWolt, Name: "New Venue", Brand: "Burgers", URL: "https://wolt.com/en/rou/bucharest/restaurant/y"},
				Verdict:   models.Verdict{Status: models.StatusUncertain, Reason: "no signal", Source: models.SourceHTMLText},
				CheckedAt: later,
			},
		},
		CompletedAt: later,
	}
	if err := store.SaveSnapshot(ctx, second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(got.Records) != 1 {
		t.Fatalf("records = %d, want 1 (old sweep must be gone)", len(got.Records))
	}
	if _, stale := got.Records["https://food.bolt.eu/ro-RO/325-bucharest/p/53203"]; stale {
		t.Error("record from previous sweep survived the replace")
	}
	if !got.CompletedAt.Equal(later) {
		t.Errorf("CompletedAt = %s, want %s", got.CompletedAt, later)
	}
}
