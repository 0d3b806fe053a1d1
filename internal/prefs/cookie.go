package prefs

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// DefaultCookieMaxAge keeps preferences for a year.
const DefaultCookieMaxAge = int((365 * 24 * time.Hour) / time.Second)

// CookieStore stores preferences as cookies on the visitor's browser. It is bound
// to one request at a time; while unbound every access reports ErrUnavailable.
type CookieStore struct {
	mu     sync.Mutex
	c      *gin.Context
	MaxAge int
	Secure bool
}

func NewCookieStore() *CookieStore {
	return &CookieStore{MaxAge: DefaultCookieMaxAge}
}

// Bind attaches the store to the request being served.
func (s *CookieStore) Bind(c *gin.Context) {
	s.mu.Lock()
	s.c = c
	s.mu.Unlock()
}

// Unbind detaches the current request.
func (s *CookieStore) Unbind() {
	s.Bind(nil)
}

func (s *CookieStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c == nil {
		return "", ErrUnavailable
	}
	v, err := s.c.Cookie(key)
	if errors.Is(err, http.ErrNoCookie) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *CookieStore) Set(key, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c == nil {
		return ErrUnavailable
	}
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(key, raw, s.MaxAge, "/", "", s.Secure, false)
	return nil
}
