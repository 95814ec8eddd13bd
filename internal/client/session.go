package client

import "sync"

// Session holds the current bearer token for the process. It is in-memory
// only: a restart starts logged out. Reads always observe the latest applied
// mutation.
type Session struct {
	mu    sync.RWMutex
	token string
	set   bool
}

// SetCredentials overwrites the stored token, normally after a login or
// refresh response.
func (s *Session) SetCredentials(accessToken string) {
	s.mu.Lock()
	s.token = accessToken
	s.set = true
	s.mu.Unlock()
}

// LogOut resets the session to its logged-out state.
func (s *Session) LogOut() {
	s.mu.Lock()
	s.token = ""
	s.set = false
	s.mu.Unlock()
}

// CurrentToken returns the stored token; ok is false when no token is set.
func (s *Session) CurrentToken() (token string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.set
}
