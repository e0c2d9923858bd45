package journal

import "testing"

func TestRegister(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	user, err := core.Register("  Trader@Example.COM ", "secret123")
	assertNoError(t, err, "register")

	if user.Email != "trader@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if user.ID == "" || user.CreatedAt == "" {
		t.Error("expected generated id and creation time")
	}
}

func TestRegisterValidation(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	_, err := core.Register("", "secret123")
	assertErrorCode(t, err, ErrCodeValidation, "empty email")

	_, err = core.Register("not-an-email", "secret123")
	assertErrorCode(t, err, ErrCodeValidation, "email without @")

	_, err = core.Register("trader@example.com", "short")
	assertErrorCode(t, err, ErrCodeValidation, "password under 6 chars")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	_, err := core.Register("trader@example.com", "secret123")
	assertNoError(t, err, "first register")

	// Same address with different case is still a duplicate.
	_, err = core.Register("TRADER@example.com", "another456")
	assertErrorCode(t, err, ErrCodeDuplicate, "duplicate email")
}

func TestLogin(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	user, err := core.Register("trader@example.com", "secret123")
	assertNoError(t, err, "register")

	session, err := core.Login("trader@example.com", "secret123")
	assertNoError(t, err, "login")
	if session.Token == "" {
		t.Fatal("expected session token")
	}
	if session.UserID != user.ID || session.Email != user.Email {
		t.Errorf("session identity mismatch: %+v", session)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	_, err := core.Register("trader@example.com", "secret123")
	assertNoError(t, err, "register")

	_, err = core.Login("trader@example.com", "wrongpass")
	assertErrorCode(t, err, ErrCodeUnauthorized, "wrong password")

	_, err = core.Login("nobody@example.com", "secret123")
	assertErrorCode(t, err, ErrCodeUnauthorized, "unknown email")
}

func TestValidateSession(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	_, err := core.Register("trader@example.com", "secret123")
	assertNoError(t, err, "register")
	session, err := core.Login("trader@example.com", "secret123")
	assertNoError(t, err, "login")

	resolved, err := core.ValidateSession(session.Token)
	assertNoError(t, err, "validate")
	if resolved.UserID != session.UserID || resolved.Email != session.Email {
		t.Errorf("resolved session mismatch: %+v", resolved)
	}

	_, err = core.ValidateSession("")
	assertErrorCode(t, err, ErrCodeUnauthorized, "empty token")

	_, err = core.ValidateSession("not-a-real-token")
	assertErrorCode(t, err, ErrCodeUnauthorized, "unknown token")
}

func TestValidateSessionPrunesExpiredRows(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	user, err := core.Register("trader@example.com", "secret123")
	assertNoError(t, err, "register")

	// Plant an already-expired session directly.
	_, err = core.db.Exec(
		"INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)",
		"stale-token", user.ID, "2020-01-01T00:00:00Z",
	)
	assertNoError(t, err, "insert stale session")

	_, err = core.ValidateSession("stale-token")
	assertErrorCode(t, err, ErrCodeUnauthorized, "expired token")

	var count int
	err = core.db.QueryRow("SELECT COUNT(*) FROM sessions WHERE token = ?", "stale-token").Scan(&count)
	assertNoError(t, err, "count stale rows")
	if count != 0 {
		t.Error("expired session row was not pruned")
	}
}

func TestLogout(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	_, err := core.Register("trader@example.com", "secret123")
	assertNoError(t, err, "register")
	session, err := core.Login("trader@example.com", "secret123")
	assertNoError(t, err, "login")

	assertNoError(t, core.Logout(session.Token), "logout")
	_, err = core.ValidateSession(session.Token)
	assertErrorCode(t, err, ErrCodeUnauthorized, "token after logout")

	// Unknown and empty tokens are no-ops.
	assertNoError(t, core.Logout("no-such-token"), "logout unknown token")
	assertNoError(t, core.Logout(""), "logout empty token")
}

func TestPasswordResetFlow(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	user, err := core.Register("trader@example.com", "secret123")
	assertNoError(t, err, "register")
	oldSession, err := core.Login("trader@example.com", "secret123")
	assertNoError(t, err, "login")

	assertNoError(t, core.RequestPasswordReset("trader@example.com"), "request reset")

	var token string
	err = core.db.QueryRow("SELECT token FROM password_resets WHERE user_id = ?", user.ID).Scan(&token)
	assertNoError(t, err, "fetch reset token")

	assertNoError(t, core.CompletePasswordReset(token, "newsecret"), "complete reset")

	_, err = core.Login("trader@example.com", "secret123")
	assertErrorCode(t, err, ErrCodeUnauthorized, "old password after reset")
	_, err = core.Login("trader@example.com", "newsecret")
	assertNoError(t, err, "new password after reset")

	// All pre-reset sessions are revoked.
	_, err = core.ValidateSession(oldSession.Token)
	assertErrorCode(t, err, ErrCodeUnauthorized, "old session after reset")

	// Tokens are single-use.
	err = core.CompletePasswordReset(token, "anotherpass")
	assertErrorCode(t, err, ErrCodeUnauthorized, "reused reset token")
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	// Unknown addresses get the same silent success as known ones.
	assertNoError(t, core.RequestPasswordReset("nobody@example.com"), "unknown email")

	err := core.RequestPasswordReset("")
	assertErrorCode(t, err, ErrCodeValidation, "empty email")
}

func TestCompletePasswordResetValidation(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	err := core.CompletePasswordReset("whatever", "short")
	assertErrorCode(t, err, ErrCodeValidation, "short password")

	err = core.CompletePasswordReset("no-such-token", "newsecret")
	assertErrorCode(t, err, ErrCodeUnauthorized, "unknown token")
}

func TestIsExpired(t *testing.T) {
	if !isExpired("2020-01-01T00:00:00Z") {
		t.Error("past timestamp should be expired")
	}
	if isExpired("2099-01-01T00:00:00Z") {
		t.Error("future timestamp should not be expired")
	}
	if !isExpired("not-a-timestamp") {
		t.Error("unparseable timestamp should count as expired")
	}
}
