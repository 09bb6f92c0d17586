package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLine(t *testing.T) {
	assert.True(t, Line('a', '\n', 'b'))
	assert.True(t, Line('\r', '\n', 'b'))
	assert.True(t, Line('$', '\n', 'b'), "Line does not honor escapes")
	assert.False(t, Line('a', 'b', '\n'))
	assert.False(t, Line('\n', 'a', 'b'))
}

func TestNinja(t *testing.T) {
	assert.True(t, Ninja('a', '\n', 'b'))
	assert.True(t, Ninja('\r', '\n', 'b'))
	assert.False(t, Ninja('$', '\n', 'b'), "$\\n is a line continuation")
	assert.False(t, Ninja('a', '$', '\n'))
	assert.False(t, Ninja('a', 'b', 'c'))
}
