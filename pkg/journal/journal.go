package journal

import "strings"

// defaultState builds a first-use journal: capital 1000, empty lists,
// present calendar month.
func defaultState(userID string) *JournalState {
	return &JournalState{
		UserID:         userID,
		InitialCapital: DefaultInitialCapital,
		Trades:         []Trade{},
		MonthlyHistory: []MonthRecord{},
		CurrentMonth:   currentMonthKey(),
	}
}

// getState returns the in-memory state for a journal identifier, loading it
// from storage on first access. A load failure other than "no record" is
// logged and defaults apply; the stored copy is then superseded by the next
// successful save (last write wins).
func (c *Core) getState(userID string) *JournalState {
	if state, ok := c.journals[userID]; ok {
		return state
	}
	state, err := c.loadJournalRow(userID)
	if err != nil {
		c.logger.Error("load journal failed, using defaults", "user_id", userID, "err", err)
		state = nil
	}
	if state == nil {
		state = defaultState(userID)
	}
	c.journals[userID] = state
	return state
}

// GetJournal returns the journal state and its derived stats.
func (c *Core) GetJournal(userID string) (JournalView, error) {
	if strings.TrimSpace(userID) == "" {
		return JournalView{}, NewError(ErrCodeInvalidInput, "journal id is required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.getState(userID)
	return JournalView{
		JournalState: *state,
		Stats:        ComputeStats(state.Trades, state.InitialCapital),
	}, nil
}

// Stats recomputes the statistics summary for the open trades.
func (c *Core) Stats(userID string) (Stats, error) {
	view, err := c.GetJournal(userID)
	if err != nil {
		return Stats{}, err
	}
	return view.Stats, nil
}

// AddTrade validates and appends a new trade, then schedules a save.
func (c *Core) AddTrade(userID string, req AddTradeRequest) (Trade, error) {
	pair := strings.ToUpper(strings.TrimSpace(req.Pair))
	if pair == "" {
		return Trade{}, NewError(ErrCodeValidation, "pair is required")
	}
	if !req.Amount.IsPositive() {
		return Trade{}, NewError(ErrCodeValidation, "amount must be positive")
	}
	if req.Result != ResultWin && req.Result != ResultLoss {
		return Trade{}, NewError(ErrCodeValidation, "result must be win or loss")
	}
	leverage := req.Leverage
	if leverage < 1 {
		leverage = 1
	}
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = todayISO()
	}

	trade := Trade{
		ID:       newID(),
		Pair:     pair,
		Leverage: leverage,
		Result:   req.Result,
		Amount:   req.Amount,
		Date:     date,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.getState(userID)
	state.Trades = append(state.Trades, trade)
	c.saver.schedule(userID)
	return trade, nil
}

// DeleteTrade removes the trade with the given identifier from the open
// list. Deleting an unknown identifier is a no-op, not an error.
func (c *Core) DeleteTrade(userID, tradeID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.getState(userID)
	kept := make([]Trade, 0, len(state.Trades))
	removed := false
	for _, trade := range state.Trades {
		if trade.ID == tradeID {
			removed = true
			continue
		}
		kept = append(kept, trade)
	}
	if !removed {
		return nil
	}
	state.Trades = kept
	c.saver.schedule(userID)
	return nil
}

// SetInitialCapital replaces the starting capital for the open month.
func (c *Core) SetInitialCapital(userID string, capital Amount) error {
	if capital.IsNegative() {
		return NewError(ErrCodeValidation, "initial capital cannot be negative")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.getState(userID)
	state.InitialCapital = capital
	c.saver.schedule(userID)
	return nil
}

// CloseMonth folds the open trades into an immutable archive record,
// carries the ending balance forward as the new initial capital, clears
// the open trades and advances the month key to the present month.
func (c *Core) CloseMonth(userID string) (MonthRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.getState(userID)
	if len(state.Trades) == 0 {
		return MonthRecord{}, NewError(ErrCodeValidation, "no trades to archive")
	}

	stats := ComputeStats(state.Trades, state.InitialCapital)
	record := MonthRecord{
		ID:             newID(),
		Month:          state.CurrentMonth,
		MonthName:      monthLabel(state.CurrentMonth),
		InitialCapital: state.InitialCapital,
		Trades:         state.Trades,
		Stats:          stats,
		SavedDate:      nowRFC3339(),
	}

	// Most recent first.
	state.MonthlyHistory = append([]MonthRecord{record}, state.MonthlyHistory...)
	state.InitialCapital = stats.CurrentBalance
	state.Trades = []Trade{}
	state.CurrentMonth = currentMonthKey()
	c.saver.schedule(userID)
	return record, nil
}

// DeleteMonth removes an archived month by identifier. The explicit user
// confirmation happens client-side; an unknown identifier is a no-op.
func (c *Core) DeleteMonth(userID, monthID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.getState(userID)
	kept := make([]MonthRecord, 0, len(state.MonthlyHistory))
	removed := false
	for _, record := range state.MonthlyHistory {
		if record.ID == monthID {
			removed = true
			continue
		}
		kept = append(kept, record)
	}
	if !removed {
		return nil
	}
	state.MonthlyHistory = kept
	c.saver.schedule(userID)
	return nil
}
