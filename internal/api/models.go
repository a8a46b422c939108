package api

import "time"

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	Archived  bool      `json:"archived"`
	Owner     string    `json:"owner,omitempty"`
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginData struct {
	AccessToken string `json:"accessToken"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterData struct {
	UserID string `json:"userId"`
}

// Result is the normalized outcome of an API call that reached the server.
// Error is set for any API-level failure; Message then carries the server's
// explanation.
type Result[T any] struct {
	Error   bool
	Message string
	Data    T
}

// Envelope is the wire shape of every notes API response. Servers report
// failure either through Status ("success"/"fail") or through the Error flag.
type Envelope struct {
	Status  string `json:"status,omitempty"`
	Error   *bool  `json:"error,omitempty"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
