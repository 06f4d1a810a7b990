package utils

import "github.com/google/uuid"

// UUIDGenerator produces string identifiers for trace IDs and sessions.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time-ordered UUIDv7, falling back to v4.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// Random returns a UUIDv4. Session identifiers use it since every bit apart
// from the version is random.
func (g *UUIDGenerator) Random() string {
	return uuid.NewString()
}
