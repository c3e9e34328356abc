package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	assert.Equal(t, zerolog.DebugLevel, SetLevel("DEBUG"))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.Equal(t, zerolog.WarnLevel, SetLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, SetLevel(""))
	assert.Equal(t, zerolog.InfoLevel, SetLevel("loud"))
}
