package journal

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setupTestCore creates a temporary database and returns a Core with a
// short save delay. The caller should defer cleanup().
func setupTestCore(t *testing.T) (*Core, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "journal-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	core, err := OpenWithOptions(Options{DBPath: dbPath, SaveDelay: 25 * time.Millisecond})
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open test db: %v", err)
	}

	cleanup := func() {
		core.Close()
		os.RemoveAll(tmpDir)
	}

	return core, cleanup
}

// testTrade builds an AddTradeRequest for the common case.
func testTrade(pair, result string, amount float64) AddTradeRequest {
	return AddTradeRequest{
		Pair:     pair,
		Leverage: 1,
		Result:   result,
		Amount:   NewAmount(amount),
		Date:     "2026-08-01",
	}
}

// addTestTrade logs a trade and fails the test on error.
func addTestTrade(t *testing.T, core *Core, userID string, req AddTradeRequest) Trade {
	t.Helper()
	trade, err := core.AddTrade(userID, req)
	if err != nil {
		t.Fatalf("failed to add test trade: %v", err)
	}
	return trade
}

// floatEquals checks if two floats are approximately equal.
func floatEquals(a, b, epsilon float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < epsilon
}

// assertFloatEquals fails the test if the floats are not approximately equal.
func assertFloatEquals(t *testing.T, got, want float64, msg string) {
	t.Helper()
	if !floatEquals(got, want, 0.001) {
		t.Errorf("%s: got %.4f, want %.4f", msg, got, want)
	}
}

// assertAmountEquals fails the test if an Amount does not equal a float value.
func assertAmountEquals(t *testing.T, got Amount, want float64, msg string) {
	t.Helper()
	assertFloatEquals(t, got.Float(), want, msg)
}

// assertNoError fails the test if err is not nil.
func assertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", msg, err)
	}
}

// assertErrorCode fails the test unless err carries the given code.
func assertErrorCode(t *testing.T, err error, code ErrorCode, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected %s error but got nil", msg, code)
	}
	if !IsErrorCode(err, code) {
		t.Fatalf("%s: expected %s error, got: %v", msg, code, err)
	}
}
