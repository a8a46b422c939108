package session

import "github.com/nzaccagnino/notely/internal/api"

// Session is the authenticated identity: an access token and the user it
// belongs to. Either both are present or neither is.
type Session struct {
	accessToken string
	user        *api.User
}

// Begin authenticates the session. An empty token leaves it logged out.
func (s *Session) Begin(token string, user api.User) {
	if token == "" {
		s.Clear()
		return
	}
	s.accessToken = token
	s.user = &user
}

func (s *Session) Clear() {
	s.accessToken = ""
	s.user = nil
}

func (s Session) Token() string {
	return s.accessToken
}

func (s Session) User() (api.User, bool) {
	if s.user == nil {
		return api.User{}, false
	}
	return *s.user, true
}

func (s Session) Authenticated() bool {
	return s.accessToken != "" && s.user != nil
}
