package journal

import "fmt"

// Export builds the downloadable snapshot document for a journal.
func (c *Core) Export(userID string) (ExportDocument, error) {
	view, err := c.GetJournal(userID)
	if err != nil {
		return ExportDocument{}, err
	}
	return ExportDocument{
		InitialCapital: view.InitialCapital,
		Trades:         view.Trades,
		MonthlyHistory: view.MonthlyHistory,
		CurrentMonth:   view.CurrentMonth,
		UserID:         view.UserID,
		ExportDate:     nowRFC3339(),
	}, nil
}

// ExportFileName names the download with the current date.
func ExportFileName() string {
	return fmt.Sprintf("trading-journal-%s.json", todayISO())
}

// Replace overwrites the journal state wholesale from an imported snapshot.
// Absent fields fall back to defaults: capital 1000, empty lists, present
// month. It does not merge with the existing state.
func (c *Core) Replace(userID string, snapshot ImportSnapshot) (JournalView, error) {
	if userID == "" {
		return JournalView{}, NewError(ErrCodeInvalidInput, "journal id is required")
	}

	state := defaultState(userID)
	if snapshot.InitialCapital != nil {
		if snapshot.InitialCapital.IsNegative() {
			return JournalView{}, NewError(ErrCodeValidation, "initial capital cannot be negative")
		}
		state.InitialCapital = *snapshot.InitialCapital
	}
	if snapshot.Trades != nil {
		state.Trades = snapshot.Trades
	}
	if snapshot.MonthlyHistory != nil {
		state.MonthlyHistory = snapshot.MonthlyHistory
	}
	if snapshot.CurrentMonth != "" {
		state.CurrentMonth = snapshot.CurrentMonth
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.journals[userID] = state
	c.saver.schedule(userID)
	return JournalView{
		JournalState: *state,
		Stats:        ComputeStats(state.Trades, state.InitialCapital),
	}, nil
}
