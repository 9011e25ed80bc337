package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSessionKey(t *testing.T) {
	assert.Equal(t, "session:abc", BuildSessionKey("abc"))
}

func TestBuildLockKey(t *testing.T) {
	assert.Equal(t, "lock:persona:create:abc", BuildLockKey("create", "abc"))
	assert.Equal(t, "lock:persona:delete:abc:p1", BuildLockKey("delete", "abc", "p1"))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("PERSONAS_TEST_INT", "42")
	t.Setenv("PERSONAS_TEST_BAD_INT", "forty")
	t.Setenv("PERSONAS_TEST_BOOL", "true")
	t.Setenv("PERSONAS_TEST_FLOAT", "2.5")
	t.Setenv("PERSONAS_TEST_EMPTY", "")

	assert.Equal(t, 42, GetEnvInt("PERSONAS_TEST_INT", 1))
	assert.Equal(t, 1, GetEnvInt("PERSONAS_TEST_BAD_INT", 1), "unparsable value falls back to the default")
	assert.True(t, GetEnvBool("PERSONAS_TEST_BOOL", false))
	assert.Equal(t, 2.5, GetEnvFloat("PERSONAS_TEST_FLOAT", 0))
	assert.Equal(t, "fallback", GetEnvString("PERSONAS_TEST_EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetEnvString("PERSONAS_TEST_UNSET", "fallback"))
}
