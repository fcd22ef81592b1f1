package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("TRACKER_TEST_VALUE", "  set  ")
	assert.Equal(t, "set", EnvOrDefault("TRACKER_TEST_VALUE", "fallback"))

	t.Setenv("TRACKER_TEST_VALUE", "   ")
	assert.Equal(t, "fallback", EnvOrDefault("TRACKER_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", EnvOrDefault("TRACKER_TEST_UNSET", "fallback"))
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("TRACKER_TEST_TTL", "90m")
	assert.Equal(t, 90*time.Minute, EnvDuration("TRACKER_TEST_TTL", time.Second))

	t.Setenv("TRACKER_TEST_TTL", "soon")
	assert.Equal(t, time.Second, EnvDuration("TRACKER_TEST_TTL", time.Second))

	t.Setenv("TRACKER_TEST_TTL", "-5m")
	assert.Equal(t, time.Second, EnvDuration("TRACKER_TEST_TTL", time.Second))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, SplitList(" http://a, ,http://b ,"))
	assert.Nil(t, SplitList(""))
}
