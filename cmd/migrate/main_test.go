package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskDatabaseURL(t *testing.T) {
	masked := maskDatabaseURL("postgres://studio:s3cret@db:5432/studio")
	assert.NotContains(t, masked, "s3cret")
	assert.Contains(t, masked, "studio:")
	assert.Contains(t, masked, "@db:5432/studio")

	assert.Equal(t, "postgres://db:5432/studio", maskDatabaseURL("postgres://db:5432/studio"))
	assert.Equal(t, "***", maskDatabaseURL("short"))
}
