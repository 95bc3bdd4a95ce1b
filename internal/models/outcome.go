package models

import (
	"encoding/json"
	"fmt"
)

// ErrorKind classifies a failed fetch cycle
type ErrorKind string

const (
	NetworkError ErrorKind = "network"
	ParseError   ErrorKind = "parse"
)

// FetchError is the typed failure of a source fetch or parse
type FetchError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// NewFetchError builds a FetchError wrapping err
func NewFetchError(kind ErrorKind, message string, err error) *FetchError {
	return &FetchError{Kind: kind, Message: message, Err: err}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// MarshalJSON exposes kind and message only; the wrapped error stays internal
func (e *FetchError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    ErrorKind `json:"kind"`
		Message string    `json:"message"`
	}{e.Kind, e.Message})
}

// Outcome is the tagged result of one source: a value or a typed failure
type Outcome[T any] struct {
	Value T
	Err   *FetchError
}

// Succeeded wraps a successful value
func Succeeded[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v}
}

// Failed wraps a failure
func Failed[T any](err *FetchError) Outcome[T] {
	return Outcome[T]{Err: err}
}

// OK reports whether the outcome is a success
func (o Outcome[T]) OK() bool {
	return o.Err == nil
}
