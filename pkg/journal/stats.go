package journal

import "fmt"

// startLabel is the label of the leading balance-curve point.
const startLabel = "Start"

// ComputeStats derives the aggregate metrics for an ordered trade list and
// an initial capital. It is pure and deterministic; the presentation layer
// calls it on every render and month close embeds its result as a snapshot.
//
// The balance curve always begins with the initial capital and gains exactly
// one point per trade, in trade order. Max drawdown is measured against the
// running peak balance and is never negative.
func ComputeStats(trades []Trade, initialCapital Amount) Stats {
	balance := initialCapital
	peak := initialCapital

	var wins, losses int
	var winAmount, lossAmount Amount
	var maxDrawdown float64

	history := make([]BalancePoint, 0, len(trades)+1)
	history = append(history, BalancePoint{Label: startLabel, Balance: initialCapital})

	for i, trade := range trades {
		if trade.Result == ResultWin {
			balance = balance.Add(trade.Amount)
			winAmount = winAmount.Add(trade.Amount)
			wins++
		} else {
			balance = balance.Sub(trade.Amount)
			lossAmount = lossAmount.Add(trade.Amount)
			losses++
		}

		if balance.GreaterThan(peak.Decimal) {
			peak = balance
		}
		if peak.IsPositive() {
			drawdown := peak.Sub(balance).Float() / peak.Float() * 100
			if drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}

		history = append(history, BalancePoint{
			Label:   fmt.Sprintf("Op %d", i+1),
			Balance: balance,
		})
	}

	total := len(trades)
	winRate := 0.0
	if total > 0 {
		winRate = float64(wins) / float64(total) * 100
	}
	profitLoss := balance.Sub(initialCapital)
	roi := 0.0
	if !initialCapital.IsZero() {
		roi = profitLoss.Float() / initialCapital.Float() * 100
	}

	return Stats{
		CurrentBalance: balance,
		TotalWins:      wins,
		TotalLosses:    losses,
		TotalTrades:    total,
		WinRate:        winRate,
		ProfitLoss:     profitLoss,
		ROI:            roi,
		WinAmount:      winAmount,
		LossAmount:     lossAmount,
		MaxDrawdown:    maxDrawdown,
		BalanceHistory: history,
		NetTotal:       winAmount.Sub(lossAmount),
	}
}
