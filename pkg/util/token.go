// Package util contains any functions used across the application that don't match
// any other package
package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet is the URL-safe set link ids and request ids are drawn from
const Alphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const (
	// LinkIDSize gives 72 bits of entropy with a 64 symbol alphabet
	LinkIDSize    = 12
	requestIDSize = 10
)

// LinkID returns a fresh public link identifier. No uniqueness check is done,
// the id space is large enough for collisions to be ignored.
func LinkID() (string, error) {
	return gonanoid.Generate(Alphabet, LinkIDSize)
}

// RequestID is used to correlate log lines with error responses
func RequestID() string {
	id, err := gonanoid.Generate(Alphabet, requestIDSize)
	if err != nil {
		return "unknown"
	}

	return id
}
