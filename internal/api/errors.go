package api

import (
	"errors"
	"fmt"
)

// RequestError is a non-success response from the API. Message carries
// the server-supplied message when the body had one.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("requisição falhou com status %d", e.Status)
}

// ConnectionError means no response reached the client at all.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "Erro ao se conectar com o servidor."
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// UserMessage extracts the message to surface in a form for a failed
// mutation, falling back to the resource-specific text when the server
// sent none.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var re *RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	var ce *ConnectionError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	return fallback
}
