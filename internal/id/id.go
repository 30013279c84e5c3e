// Package id generates the random tokens used as todo identifiers.
package id

import "github.com/google/uuid"

// New returns a random version 4 UUID in its canonical string form.
func New() string {
	return uuid.NewString()
}
