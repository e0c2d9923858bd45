package api

import "tradejournal/pkg/journal"

type registerPayload struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetRequestPayload struct {
	Email string `json:"email"`
}

type resetPayload struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type sessionResponse struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

type addTradePayload struct {
	Pair     string         `json:"pair"`
	Leverage int            `json:"leverage"`
	Result   string         `json:"result"`
	Amount   journal.Amount `json:"amount"`
	Date     string         `json:"date"`
}

type capitalPayload struct {
	InitialCapital journal.Amount `json:"initial_capital"`
}
