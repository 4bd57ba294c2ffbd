package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based IDs: account numbers, transaction
// numbers and transfer group IDs. ULIDs are uppercase alphanumeric and
// lexicographically ordered by creation time, which keeps transaction
// numbers human-shareable and roughly sortable.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
