package utils

import (
	"personas-web/internal/pkg/constvars"
	"strings"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func GenerateSessionID() string {
	return uuid.NewString()
}

// IsValidSessionID rejects cookie values that were not minted by GenerateSessionID.
func IsValidSessionID(sessionID string) bool {
	_, err := uuid.Parse(sessionID)
	return err == nil
}
