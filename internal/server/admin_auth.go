package server

import (
	"errors"
	"net/http"
)

var errNoAdminSession = errors.New("no valid admin session")

const adminCookieName = "admin_session"

// adminFromRequest reads the admin_session cookie and resolves the admin.
func adminFromRequest(r *http.Request, store Store) (adminSession, error) {
	cookie, err := r.Cookie(adminCookieName)
	if err != nil || cookie.Value == "" {
		return adminSession{}, errNoAdminSession
	}

	sess, err := store.AdminFromSession(r.Context(), cookie.Value)
	if errors.Is(err, ErrNotFound) {
		return adminSession{}, errNoAdminSession
	}
	return sess, err
}
