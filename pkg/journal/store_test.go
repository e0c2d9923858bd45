package journal

import "testing"

func TestLoadJournalRowMissingMeansFirstUse(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	state, err := core.loadJournalRow("never-seen")
	assertNoError(t, err, "load missing row")
	if state != nil {
		t.Fatalf("expected nil state for missing row, got %+v", state)
	}
}

func TestUpsertJournalRowRoundTrip(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	original := &JournalState{
		UserID:         "device-1",
		InitialCapital: NewAmount(1500),
		Trades: []Trade{
			{ID: "t1", Pair: "BTC/USD", Leverage: 3, Result: ResultWin, Amount: NewAmount(42.5), Date: "2026-08-10"},
		},
		MonthlyHistory: []MonthRecord{},
		CurrentMonth:   "2026-08",
	}
	assertNoError(t, core.upsertJournalRow(original), "upsert")
	if original.UpdatedAt == "" {
		t.Error("upsert must stamp updated_at")
	}

	loaded, err := core.loadJournalRow("device-1")
	assertNoError(t, err, "load")
	if loaded == nil {
		t.Fatal("expected stored row")
	}
	assertAmountEquals(t, loaded.InitialCapital, 1500, "capital")
	if len(loaded.Trades) != 1 || loaded.Trades[0].ID != "t1" {
		t.Fatalf("trades not round-tripped: %+v", loaded.Trades)
	}
	if loaded.Trades[0].Leverage != 3 {
		t.Errorf("leverage: got %d, want 3", loaded.Trades[0].Leverage)
	}
	if loaded.CurrentMonth != "2026-08" {
		t.Errorf("month: got %q", loaded.CurrentMonth)
	}
}

func TestUpsertJournalRowLastWriteWins(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	first := &JournalState{UserID: "device-1", InitialCapital: NewAmount(100), Trades: []Trade{}, MonthlyHistory: []MonthRecord{}, CurrentMonth: "2026-07"}
	assertNoError(t, core.upsertJournalRow(first), "first upsert")

	second := &JournalState{UserID: "device-1", InitialCapital: NewAmount(900), Trades: []Trade{}, MonthlyHistory: []MonthRecord{}, CurrentMonth: "2026-08"}
	assertNoError(t, core.upsertJournalRow(second), "second upsert")

	loaded, err := core.loadJournalRow("device-1")
	assertNoError(t, err, "load")
	assertAmountEquals(t, loaded.InitialCapital, 900, "latest capital")
	if loaded.CurrentMonth != "2026-08" {
		t.Errorf("month: got %q, want 2026-08", loaded.CurrentMonth)
	}
}

func TestLoadJournalRowDegradesOnCorruptColumns(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	_, err := core.db.Exec(`
		INSERT INTO journals (user_id, initial_capital, trades, monthly_history, current_month, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, "device-1", 1234.0, "{not json", "also broken", "", "2026-08-01T00:00:00Z")
	assertNoError(t, err, "insert corrupt row")

	state, err := core.loadJournalRow("device-1")
	assertNoError(t, err, "load corrupt row")
	if state == nil {
		t.Fatal("corrupt columns must not block the load")
	}
	assertAmountEquals(t, state.InitialCapital, 1234, "capital survives")
	if len(state.Trades) != 0 || len(state.MonthlyHistory) != 0 {
		t.Errorf("corrupt lists should reset to empty, got %d/%d",
			len(state.Trades), len(state.MonthlyHistory))
	}
	if state.CurrentMonth != currentMonthKey() {
		t.Errorf("empty month should default to present, got %q", state.CurrentMonth)
	}
}
