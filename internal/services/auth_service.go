package services

import (
	"errors"
	"time"

	"nexusops/internal/domain"
	"nexusops/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds       = errors.New("invalid email or password")
	ErrSessionExpired = errors.New("session expired")
)

// sessionMaxAge bounds how long an idle session stays valid; every
// authenticated request slides the window via TouchSession.
const sessionMaxAge = 30 * 24 * time.Hour

type AuthService struct {
	Users *repos.UserRepo
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

// CurrentUser resolves the session cookie to a user, rejecting sessions idle
// past sessionMaxAge and unbinding them so they cannot be revived.
func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	u, lastSeen, err := s.Users.SessionUser(sid)
	if err != nil {
		return nil, err
	}
	// SQLite CURRENT_TIMESTAMP format, always UTC.
	if t, perr := time.Parse("2006-01-02 15:04:05", lastSeen); perr == nil {
		if time.Since(t) > sessionMaxAge {
			_ = s.Users.UnbindSession(sid)
			return nil, ErrSessionExpired
		}
	}
	_ = s.Users.TouchSession(sid)
	return u, nil
}
