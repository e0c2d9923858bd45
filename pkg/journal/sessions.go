package journal

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"time"
)

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func futureRFC3339(d time.Duration) string {
	return time.Now().UTC().Add(d).Format(time.RFC3339)
}

func isExpired(expiresAt string) bool {
	t, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil {
		return true
	}
	return time.Now().UTC().After(t)
}

func (c *Core) createSession(userID, email string) (Session, error) {
	token, err := newToken()
	if err != nil {
		return Session{}, WrapError(ErrCodeInternal, "generate session token", err)
	}
	session := Session{
		Token:     token,
		UserID:    userID,
		Email:     email,
		ExpiresAt: futureRFC3339(c.sessionTTL),
	}
	if _, err := c.db.Exec(
		"INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)",
		session.Token, session.UserID, session.ExpiresAt,
	); err != nil {
		return Session{}, WrapError(ErrCodeDatabase, "store session", err)
	}
	c.logger.Info("session created", "user_id", userID)
	return session, nil
}

// ValidateSession resolves a token to its session. Expired or unknown
// tokens yield UNAUTHORIZED; expired rows are pruned on touch so the gate
// observes invalidation without a background sweeper.
func (c *Core) ValidateSession(token string) (Session, error) {
	if token == "" {
		return Session{}, NewError(ErrCodeUnauthorized, "not authenticated")
	}

	var session Session
	err := c.db.QueryRow(`
		SELECT s.token, s.user_id, u.email, s.expires_at
		FROM sessions s JOIN users u ON u.id = s.user_id
		WHERE s.token = ?
	`, token).Scan(&session.Token, &session.UserID, &session.Email, &session.ExpiresAt)
	if err == sql.ErrNoRows {
		return Session{}, NewError(ErrCodeUnauthorized, "not authenticated")
	}
	if err != nil {
		return Session{}, WrapError(ErrCodeDatabase, "look up session", err)
	}
	if isExpired(session.ExpiresAt) {
		_, _ = c.db.Exec("DELETE FROM sessions WHERE token = ?", token)
		return Session{}, NewError(ErrCodeUnauthorized, "session expired")
	}
	return session, nil
}

// Logout revokes a session token. Revoking an unknown token is a no-op.
func (c *Core) Logout(token string) error {
	if token == "" {
		return nil
	}
	if _, err := c.db.Exec("DELETE FROM sessions WHERE token = ?", token); err != nil {
		return WrapError(ErrCodeDatabase, "delete session", err)
	}
	return nil
}
