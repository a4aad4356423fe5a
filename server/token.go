package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// generateJWT issues a bearer token for the bootstrap admin account, the
// same HS512/issuer/expiry claim shape as tunaq's server.generateJWT, but
// signed with the plain token secret since there is no per-user password
// to fold into the signing key (there is exactly one account).
func (s *Server) generateJWT() (string, error) {
	claims := &jwt.MapClaims{
		"iss": "nmmsd",
		"sub": s.cfg.AdminUser,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return tok.SignedString(s.cfg.TokenSecret)
}

// validateJWT parses and validates tok, returning an error unless it was
// signed by this server for the admin subject and has not expired.
func (s *Server) validateJWT(tok string) error {
	parsed, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		return s.cfg.TokenSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer("nmmsd"), jwt.WithLeeway(time.Minute))
	if err != nil {
		return err
	}
	subj, err := parsed.Claims.GetSubject()
	if err != nil {
		return fmt.Errorf("cannot get subject: %w", err)
	}
	if subj != s.cfg.AdminUser {
		return fmt.Errorf("unrecognized subject")
	}
	return nil
}

func getBearerToken(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(strings.TrimSpace(parts[0]), "bearer") {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}
	return strings.TrimSpace(parts[1]), nil
}

// requireAuth is chi middleware gating the mutating tell endpoint behind
// a valid bearer token, the way tunaq's AuthHandler gates mutating routes,
// simplified to the single always-required case (this daemon has no
// optional-login routes).
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		tok, err := getBearerToken(req)
		if err == nil {
			err = s.validateJWT(tok)
		}
		if err != nil {
			time.Sleep(s.cfg.UnauthDelay())
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		next.ServeHTTP(w, req)
	})
}
