package uid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateGameID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := GenerateGameID()
		assert.True(t, IsGameID(id))
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.False(t, IsGameID("not-a-game"))
	assert.False(t, IsGameID(""))
}
