package journal

import (
	"database/sql"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// Register creates a local account. Emails are unique and stored lowercase.
func (c *Core) Register(email, password string) (User, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return User{}, NewError(ErrCodeValidation, "a valid email is required")
	}
	if len(password) < minPasswordLength {
		return User{}, NewError(ErrCodeValidation, "password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, WrapError(ErrCodeInternal, "hash password", err)
	}

	user := User{
		ID:        newID(),
		Email:     email,
		CreatedAt: nowRFC3339(),
	}
	_, err = c.db.Exec(
		"INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)",
		user.ID, user.Email, string(hash), user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, NewError(ErrCodeDuplicate, "this email is already registered")
		}
		return User{}, WrapError(ErrCodeDatabase, "create user", err)
	}
	c.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies credentials and issues a session.
func (c *Core) Login(email, password string) (Session, error) {
	email = normalizeEmail(email)

	var userID, storedHash string
	err := c.db.QueryRow(
		"SELECT id, password_hash FROM users WHERE email = ?", email,
	).Scan(&userID, &storedHash)
	if err == sql.ErrNoRows {
		return Session{}, NewError(ErrCodeUnauthorized, "invalid email or password")
	}
	if err != nil {
		return Session{}, WrapError(ErrCodeDatabase, "look up user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) != nil {
		return Session{}, NewError(ErrCodeUnauthorized, "invalid email or password")
	}

	return c.createSession(userID, email)
}

// RequestPasswordReset issues a reset token for the account. The response
// is the same whether or not the email exists, so the endpoint cannot be
// used to probe registered addresses. Token delivery is out of scope; the
// token is written to the log for the operator.
func (c *Core) RequestPasswordReset(email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return NewError(ErrCodeValidation, "email is required")
	}

	var userID string
	err := c.db.QueryRow("SELECT id FROM users WHERE email = ?", email).Scan(&userID)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return WrapError(ErrCodeDatabase, "look up user", err)
	}

	token, err := newToken()
	if err != nil {
		return WrapError(ErrCodeInternal, "generate reset token", err)
	}
	expires := futureRFC3339(c.sessionTTL)
	if _, err := c.db.Exec(
		"INSERT INTO password_resets (token, user_id, expires_at) VALUES (?, ?, ?)",
		token, userID, expires,
	); err != nil {
		return WrapError(ErrCodeDatabase, "store reset token", err)
	}
	c.logger.Info("password reset requested", "user_id", userID, "token", token)
	return nil
}

// CompletePasswordReset consumes a reset token and sets a new password.
// All existing sessions for the account are revoked.
func (c *Core) CompletePasswordReset(token, password string) error {
	if len(password) < minPasswordLength {
		return NewError(ErrCodeValidation, "password must be at least 6 characters")
	}

	var userID, expiresAt string
	err := c.db.QueryRow(
		"SELECT user_id, expires_at FROM password_resets WHERE token = ?", token,
	).Scan(&userID, &expiresAt)
	if err == sql.ErrNoRows {
		return NewError(ErrCodeUnauthorized, "invalid or expired reset token")
	}
	if err != nil {
		return WrapError(ErrCodeDatabase, "look up reset token", err)
	}
	if isExpired(expiresAt) {
		_, _ = c.db.Exec("DELETE FROM password_resets WHERE token = ?", token)
		return NewError(ErrCodeUnauthorized, "invalid or expired reset token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return WrapError(ErrCodeInternal, "hash password", err)
	}
	if _, err := c.db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", string(hash), userID); err != nil {
		return WrapError(ErrCodeDatabase, "update password", err)
	}
	_, _ = c.db.Exec("DELETE FROM password_resets WHERE user_id = ?", userID)
	_, _ = c.db.Exec("DELETE FROM sessions WHERE user_id = ?", userID)
	c.logger.Info("password reset completed", "user_id", userID)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isUniqueViolation detects the sqlite unique-constraint failure without
// depending on driver error types.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
