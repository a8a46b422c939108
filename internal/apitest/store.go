package apitest

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nzaccagnino/notely/internal/api"
)

var (
	errUnknownUser = errors.New("user not found")
	errEmailTaken  = errors.New("email is already in use")
)

type user struct {
	api.User
	PasswordHash string
}

type store struct {
	mu    sync.RWMutex
	users map[string]*user // by id
	notes map[string]api.Note
	seq   map[string]int
	next  int
}

func newStore() *store {
	return &store{
		users: make(map[string]*user),
		notes: make(map[string]api.Note),
		seq:   make(map[string]int),
	}
}

func (s *store) createUser(name, email, password string) (*user, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return nil, errEmailTaken
		}
	}

	u := &user{
		User: api.User{
			ID:    "user-" + uuid.NewString(),
			Name:  name,
			Email: email,
		},
		PasswordHash: string(hash),
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *store) userByID(id string) *user {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[id]
}

func (s *store) userByEmail(email string) *user {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

func validatePassword(u *user, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (s *store) addNote(owner string, n api.Note) api.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		n.ID = "notes-" + uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	n.Owner = owner
	if _, exists := s.notes[n.ID]; !exists {
		s.seq[n.ID] = s.next
		s.next++
	}
	s.notes[n.ID] = n
	return n
}

func (s *store) getNote(owner, id string) (api.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notes[id]
	if !ok || n.Owner != owner {
		return api.Note{}, false
	}
	return n, true
}

func (s *store) listNotes(owner string, archived bool) []api.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := []api.Note{}
	for _, n := range s.notes {
		if n.Owner == owner && n.Archived == archived {
			notes = append(notes, n)
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		return s.seq[notes[i].ID] < s.seq[notes[j].ID]
	})
	return notes
}

func (s *store) deleteNote(owner, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok || n.Owner != owner {
		return false
	}
	delete(s.notes, id)
	delete(s.seq, id)
	return true
}

// setArchived flips the flag. Applying the current value again succeeds.
func (s *store) setArchived(owner, id string, archived bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok || n.Owner != owner {
		return false
	}
	n.Archived = archived
	s.notes[id] = n
	return true
}
