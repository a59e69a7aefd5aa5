// Package auth is a stub login: any non-blank email and password is
// accepted. Sessions are real so logout revokes the token.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/mx-space/formcraft/internal/pkg/jwt"
	sessionpkg "github.com/mx-space/formcraft/internal/pkg/session"
	"go.uber.org/zap"
)

var ErrCredentialsRequired = errors.New("email and password are required")

// CredentialsRequiredMessage is shown to the user for blank credentials.
const CredentialsRequiredMessage = "Email and password are required."

// Redirect targets returned to the client after auth actions.
const (
	RedirectAfterLogin  = "/dashboard"
	RedirectAfterLogout = "/"
)

type Service struct {
	signer   *jwt.Signer
	sessions *sessionpkg.Store
	ttl      time.Duration
	logger   *zap.Logger
	onLogout []func(sessionID string)
}

func NewService(signer *jwt.Signer, sessions *sessionpkg.Store, logger *zap.Logger) *Service {
	return &Service{
		signer:   signer,
		sessions: sessions,
		ttl:      sessionpkg.DefaultTTL,
		logger:   logger.Named("auth"),
	}
}

// OnLogout registers fn to run with the session id of every logout.
func (s *Service) OnLogout(fn func(sessionID string)) {
	s.onLogout = append(s.onLogout, fn)
}

// Login issues a session token for any non-blank credentials.
func (s *Service) Login(email, password string) (*TokenResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}
	sess := s.sessions.Issue(email, s.ttl)
	token, err := s.signer.Sign(email, sess.ID, s.ttl)
	if err != nil {
		s.sessions.Revoke(sess.ID)
		return nil, err
	}
	s.logger.Info("login", zap.String("email", email), zap.String("sid", sess.ID))
	return &TokenResponse{
		Token:     token,
		Email:     email,
		ExpiresAt: sess.ExpiresAt,
		Redirect:  RedirectAfterLogin,
	}, nil
}

// Register behaves like Login; no account is stored.
func (s *Service) Register(email, password string) (*TokenResponse, error) {
	return s.Login(email, password)
}

// Logout revokes sessionID.
func (s *Service) Logout(sessionID string) {
	s.sessions.Revoke(sessionID)
	for _, fn := range s.onLogout {
		fn(sessionID)
	}
	s.logger.Info("logout", zap.String("sid", sessionID))
}
