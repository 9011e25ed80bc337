package utils

import (
	"personas-web/internal/pkg/constvars"
	"strings"
)

func BuildSessionKey(sessionID string) string {
	return constvars.RedisKeySessionPrefix + ":" + sessionID
}

// BuildLockKey scopes a mutation lock to one session and component, and
// optionally to the records it touches.
func BuildLockKey(component, sessionID string, ids ...string) string {
	parts := append([]string{constvars.RedisKeyLockPrefix, component, sessionID}, ids...)
	return strings.Join(parts, ":")
}
