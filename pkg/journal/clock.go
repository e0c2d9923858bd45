package journal

import "time"

// Dates in the journal are plain calendar strings; the client submits its
// own trade dates and the server only fills gaps, so UTC is used throughout.

func todayISO() string {
	return time.Now().UTC().Format("2006-01-02")
}

func currentMonthKey() string {
	return time.Now().UTC().Format("2006-01")
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// monthLabel turns a YYYY-MM key into a human-readable label ("January 2026").
// Unparseable keys fall back to the key itself.
func monthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("January 2006")
}
