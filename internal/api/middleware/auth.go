package middleware

import (
	"crypto/subtle"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

const (
	authRealm = `Basic realm="salon-admin", charset="UTF-8"`

	msgUnauthorized = "se requieren credenciales de administrador"
)

// AdminCredentials статические учётные данные администратора.
// Если задан PasswordHash (bcrypt), Password игнорируется.
type AdminCredentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// AdminAuth проверяет HTTP Basic авторизацию администратора
func AdminAuth(creds AdminCredentials, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok || !creds.check(username, password) {
				logger.Warn("AdminAuth: rejected %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
				w.Header().Set("WWW-Authenticate", authRealm)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (c AdminCredentials) check(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1

	var passOK bool
	switch {
	case c.PasswordHash != "":
		passOK = bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
	case c.Password != "":
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	}

	return userOK && passOK
}
