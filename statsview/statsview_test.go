package statsview

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestURL(t *testing.T) {
	assert.Equal(t, "http://localhost:12600/debug/statsview", URL())
}
