package api

import (
	"context"
	"net/http"
	"time"
)

const sessionCookieName = "journal_session"

type contextKey string

const sessionContextKey contextKey = "session"

// sessionToken extracts the token from the Authorization header or the
// session cookie. The SPA uses the cookie; API clients may send a bearer
// token instead.
func sessionToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); len(auth) > 7 && auth[:7] == "Bearer " {
		return auth[7:]
	}
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// requireSession gates journal routes: no valid session, no journal.
func (h *handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := h.core.ValidateSession(sessionToken(r))
		if err != nil {
			writeErrorResponse(w, http.StatusUnauthorized, err)
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.ConfirmPassword != "" && payload.ConfirmPassword != payload.Password {
		writeError(w, http.StatusBadRequest, "passwords do not match")
		return
	}
	user, err := h.core.Register(payload.Email, payload.Password)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	session, err := h.core.Login(payload.Email, payload.Password)
	if err != nil {
		writeErrorResponse(w, http.StatusUnauthorized, err)
		return
	}
	setSessionCookie(w, session.Token, session.ExpiresAt)
	writeJSON(w, http.StatusOK, sessionResponse{
		UserID:    session.UserID,
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt,
	})
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.core.Logout(sessionToken(r)); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// session reports the current user or none; the SPA polls this on load and
// after auth state changes.
func (h *handler) session(w http.ResponseWriter, r *http.Request) {
	session, err := h.core.ValidateSession(sessionToken(r))
	if err != nil {
		writeErrorResponse(w, http.StatusUnauthorized, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		UserID: session.UserID,
		Email:  session.Email,
	})
}

func (h *handler) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var payload resetRequestPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.core.RequestPasswordReset(payload.Email); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset_requested"})
}

func (h *handler) completePasswordReset(w http.ResponseWriter, r *http.Request) {
	var payload resetPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.core.CompletePasswordReset(payload.Token, payload.Password); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "password_reset"})
}

func setSessionCookie(w http.ResponseWriter, token, expiresAt string) {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if t, err := time.Parse(time.RFC3339, expiresAt); err == nil {
		cookie.Expires = t
	}
	http.SetCookie(w, cookie)
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
