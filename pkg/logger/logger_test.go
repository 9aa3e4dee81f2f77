package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevelDefaultsToInfo(t *testing.T) {
	assert.Equal(t, parseLevel("info"), parseLevel("not-a-level"))
	assert.NotEqual(t, parseLevel("debug"), parseLevel("error"))
}

func TestComponentReturnsIndependentSublogger(t *testing.T) {
	base := New(Config{Env: "production", Level: "info"})
	sub := base.Component("billing")

	assert.NotNil(t, sub)
	assert.NotSame(t, base, sub)
}
