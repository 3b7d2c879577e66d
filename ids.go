package shadow

import "github.com/google/uuid"

// IDGenerator produces layer identifiers. Returned ids should be unique within
// the process; the workspace falls back to a UUID when a collision or an empty
// id is returned.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() string

// NewID implements IDGenerator.
func (f IDGeneratorFunc) NewID() string {
	if f == nil {
		return ""
	}
	return f()
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}
