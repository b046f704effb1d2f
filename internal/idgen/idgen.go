// Package idgen provides short, URL-safe unique ID generation backed by
// nanoid. Run IDs tag a single recomputation pass in logs and report headers.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// RunPrefix is prepended to every computation run ID.
var RunPrefix = "run-"

// Alphabet defines the character set used for the random portion of the ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 10

// NewRunID returns a fresh computation run ID.
func NewRunID() (string, error) {
	return GenerateWithPrefix(RunPrefix)
}

// GenerateWithPrefix returns a new unique ID with the given prefix.
func GenerateWithPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}
