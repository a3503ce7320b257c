package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMayMutate(t *testing.T) {
	assert.True(t, mayMutate(1, 1))
	assert.False(t, mayMutate(1, 2))
	assert.False(t, mayMutate(0, 0)) // anonymous never qualifies
	assert.False(t, mayMutate(0, 1))
}
