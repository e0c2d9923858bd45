package journal

import (
	"database/sql"
	"encoding/json"
)

// loadJournalRow reads the stored record for a journal identifier.
// A missing row is not an error: it means first use and the caller falls
// back to defaults. Corrupt JSON columns degrade to empty lists so a bad
// stored copy never blocks the journal from loading.
func (c *Core) loadJournalRow(userID string) (*JournalState, error) {
	var (
		capital      Amount
		tradesJSON   string
		historyJSON  string
		currentMonth string
		updatedAt    string
	)
	err := c.db.QueryRow(`
		SELECT initial_capital, trades, monthly_history, current_month, updated_at
		FROM journals WHERE user_id = ?
	`, userID).Scan(&capital, &tradesJSON, &historyJSON, &currentMonth, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &JournalState{
		UserID:         userID,
		InitialCapital: capital,
		Trades:         []Trade{},
		MonthlyHistory: []MonthRecord{},
		CurrentMonth:   currentMonth,
		UpdatedAt:      updatedAt,
	}
	if err := json.Unmarshal([]byte(tradesJSON), &state.Trades); err != nil {
		c.logger.Warn("stored trades unreadable, resetting", "user_id", userID, "err", err)
		state.Trades = []Trade{}
	}
	if err := json.Unmarshal([]byte(historyJSON), &state.MonthlyHistory); err != nil {
		c.logger.Warn("stored archive unreadable, resetting", "user_id", userID, "err", err)
		state.MonthlyHistory = []MonthRecord{}
	}
	if state.CurrentMonth == "" {
		state.CurrentMonth = currentMonthKey()
	}
	return state, nil
}

// upsertJournalRow writes the full state for a journal identifier with
// insert-or-replace semantics. There are no partial updates; the last
// write wins.
func (c *Core) upsertJournalRow(state *JournalState) error {
	tradesJSON, err := json.Marshal(state.Trades)
	if err != nil {
		return WrapError(ErrCodeInternal, "encode trades", err)
	}
	historyJSON, err := json.Marshal(state.MonthlyHistory)
	if err != nil {
		return WrapError(ErrCodeInternal, "encode archive", err)
	}

	updatedAt := nowRFC3339()
	_, err = c.db.Exec(`
		INSERT INTO journals (user_id, initial_capital, trades, monthly_history, current_month, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			initial_capital = excluded.initial_capital,
			trades = excluded.trades,
			monthly_history = excluded.monthly_history,
			current_month = excluded.current_month,
			updated_at = excluded.updated_at
	`, state.UserID, state.InitialCapital, string(tradesJSON), string(historyJSON), state.CurrentMonth, updatedAt)
	if err != nil {
		return WrapError(ErrCodeDatabase, "save journal", err)
	}
	state.UpdatedAt = updatedAt
	return nil
}
