package models

import "github.com/dmitrijs2005/recipebook/internal/common"

// Result is the envelope every gateway operation returns. On success Data is
// set and Error is empty; on failure Error holds a display message and Kind
// the failure class.
type Result[T any] struct {
	Success bool             `json:"success"`
	Data    T                `json:"data,omitempty"`
	Error   string           `json:"error,omitempty"`
	Kind    common.ErrorKind `json:"kind,omitempty"`
}

// Ok wraps data in a successful Result.
func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail builds a failed Result.
func Fail[T any](kind common.ErrorKind, msg string) Result[T] {
	return Result[T]{Success: false, Error: msg, Kind: kind}
}

// Empty is the payload of operations that return nothing on success.
type Empty struct{}
