package journal

// Trade results.
const (
	ResultWin  = "win"
	ResultLoss = "loss"
)

// DefaultInitialCapital applies to journals without a stored record and to
// imported snapshots that omit the capital field.
var DefaultInitialCapital = NewAmountFromInt(1000)

// Trade represents one logged win/loss event.
type Trade struct {
	ID       string `json:"id"`
	Pair     string `json:"pair"`
	Leverage int    `json:"leverage"`
	Result   string `json:"result"`
	Amount   Amount `json:"amount"`
	Date     string `json:"date"`
}

// AddTradeRequest defines inputs to log a trade.
type AddTradeRequest struct {
	Pair     string
	Leverage int
	Result   string
	Amount   Amount
	Date     string
}

// BalancePoint is one entry of the balance-over-time curve.
type BalancePoint struct {
	Label   string `json:"label"`
	Balance Amount `json:"balance"`
}

// Stats holds the aggregate metrics derived from a trade list and a
// starting capital. It is recomputed on demand and never stored as the
// source of truth; month records embed a snapshot taken at close time.
type Stats struct {
	CurrentBalance Amount         `json:"current_balance"`
	TotalWins      int            `json:"total_wins"`
	TotalLosses    int            `json:"total_losses"`
	TotalTrades    int            `json:"total_trades"`
	WinRate        float64        `json:"win_rate"`
	ProfitLoss     Amount         `json:"profit_loss"`
	ROI            float64        `json:"roi"`
	WinAmount      Amount         `json:"win_amount"`
	LossAmount     Amount         `json:"loss_amount"`
	MaxDrawdown    float64        `json:"max_drawdown"`
	BalanceHistory []BalancePoint `json:"balance_history"`
	NetTotal       Amount         `json:"net_total"`
}

// MonthRecord is the immutable archived snapshot of a closed month.
type MonthRecord struct {
	ID             string  `json:"id"`
	Month          string  `json:"month"`
	MonthName      string  `json:"month_name"`
	InitialCapital Amount  `json:"initial_capital"`
	Trades         []Trade `json:"trades"`
	Stats          Stats   `json:"stats"`
	SavedDate      string  `json:"saved_date"`
}

// JournalState is the full mutable state of one user's journal.
type JournalState struct {
	UserID         string        `json:"user_id"`
	InitialCapital Amount        `json:"initial_capital"`
	Trades         []Trade       `json:"trades"`
	MonthlyHistory []MonthRecord `json:"monthly_history"`
	CurrentMonth   string        `json:"current_month"`
	UpdatedAt      string        `json:"updated_at,omitempty"`
}

// JournalView is a state snapshot together with its derived stats,
// returned to the presentation layer.
type JournalView struct {
	JournalState
	Stats Stats `json:"stats"`
}

// ExportDocument is the downloadable snapshot shape; ImportSnapshot accepts
// the same shape with every field optional.
type ExportDocument struct {
	InitialCapital Amount        `json:"initial_capital"`
	Trades         []Trade       `json:"trades"`
	MonthlyHistory []MonthRecord `json:"monthly_history"`
	CurrentMonth   string        `json:"current_month"`
	UserID         string        `json:"user_id"`
	ExportDate     string        `json:"export_date"`
}

// ImportSnapshot carries a previously exported document. Pointer fields
// distinguish "absent" from zero so defaults can apply.
type ImportSnapshot struct {
	InitialCapital *Amount       `json:"initial_capital"`
	Trades         []Trade       `json:"trades"`
	MonthlyHistory []MonthRecord `json:"monthly_history"`
	CurrentMonth   string        `json:"current_month"`
}

// User is a registered account of the local identity provider.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// Session is an authenticated login with an opaque token.
type Session struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	ExpiresAt string `json:"expires_at"`
}
