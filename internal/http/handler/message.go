package handler

const oopsErr = "Oops! Something went wrong. Please try again later."

const pongMessage = "Pong 🏓"

type Response struct {
	Message string `json:"message,omitempty"` // short message for humans
	Error   string `json:"error,omitempty"`   // error detail (if any)
}
