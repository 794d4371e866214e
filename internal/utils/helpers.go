// internal/utils/helpers.go
// General utility functions

package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateRequestID generates a unique request ID for request tracing.
func GenerateRequestID() string {
	return fmt.Sprintf("req_%s", uuid.New().String())
}
