package idgen

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator mints identifiers for new images.
type Generator interface {
	NewID() (string, error)
}

// UUIDv1 produces time-ordered version 1 UUIDs.
type UUIDv1 struct{}

func NewUUIDv1() UUIDv1 {
	return UUIDv1{}
}

func (UUIDv1) NewID() (string, error) {
	id, err := uuid.NewUUID()
	if err != nil {
		return "", fmt.Errorf("failed to generate uuid: %w", err)
	}
	return id.String(), nil
}
