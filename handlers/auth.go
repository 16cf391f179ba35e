package handlers

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

type userKey struct{}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func tokenSecret() []byte {
	if s := os.Getenv("AUTH_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("propbill-dev-secret")
}

// RequireAuth is middleware that enforces the bearer token issued by Token.
func RequireAuth(next http.Handler) http.Handler {
	user := os.Getenv("AUTH_USER")
	pass := os.Getenv("AUTH_PASS")

	// If no credentials are configured, skip auth
	if user == "" && pass == "" {
		log.Warn().Msg("AUTH_USER and AUTH_PASS not set, API is unauthenticated")
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const prefix = "Bearer "
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, prefix) {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims := jwt.RegisteredClaims{}
		tok, err := jwt.ParseWithClaims(strings.TrimPrefix(header, prefix), &claims,
			func(*jwt.Token) (any, error) { return tokenSecret(), nil },
			jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !tok.Valid {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		ctx := context.WithValue(r.Context(), userKey{}, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUser(ctx context.Context) string {
	u, _ := ctx.Value(userKey{}).(string)
	return u
}

// Token issues a signed session token
// @Summary      Issue token
// @Description  Exchange operator credentials for a bearer token. Form-encoded username and password.
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  Response{data=tokenResponse}
// @Failure      401  {object}  Response{error=string}
// @Router       /auth/token [post]
func Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user := os.Getenv("AUTH_USER")
	pass := os.Getenv("AUTH_PASS")
	if user != "" || pass != "" {
		if username != user || password != pass {
			writeError(w, http.StatusUnauthorized, "incorrect username or password")
			return
		}
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tokenSecret())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: signed, TokenType: "bearer"})
}

// Me returns the authenticated operator
// @Summary      Current user
// @Description  Get the username behind the presented token.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  Response{data=map[string]string}
// @Router       /auth/me [get]
// @Security     BearerAuth
func Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"username": currentUser(r.Context())})
}
