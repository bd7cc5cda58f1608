package remote

import "fmt"

// Product is one catalog entry.
type Product struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

// Todo is one todo-list entry.
type Todo struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// RandomUserResponse is the random profile API envelope.
type RandomUserResponse struct {
	Results []RandomUser `json:"results"`
}

// RandomUser is one generated profile.
type RandomUser struct {
	Name struct {
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"name"`
	Email    string `json:"email"`
	Location struct {
		City    string `json:"city"`
		Country string `json:"country"`
	} `json:"location"`
	Picture struct {
		Large string `json:"large"`
	} `json:"picture"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	Error string `json:"error"`
}

type resetRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// StatusError is returned when an upstream answers with a non-2xx status.
// Message holds the upstream's own error text, if it sent one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream returned status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("upstream returned status %d", e.Code)
}
