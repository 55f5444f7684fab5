package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"cats", "and", "dogs"}, Tokens("cats and dogs"))
	assert.Equal(t, []string{"the", "cat", "sat"}, Tokens("The Cat Sat"))
	assert.Equal(t, []string{"it", "s", "me"}, Tokens("It's ME!"))
	assert.Empty(t, Tokens(""))
	assert.Empty(t, Tokens("   ...   "))
	assert.Equal(t, []string{"a", "b"}, Tokens("  a--b  "))
}

func TestFoldLine(t *testing.T) {
	assert.Equal(t, "hello  world ", FoldLine("Hello, World!"))
	assert.Equal(t, len("X1Y"), len(FoldLine("X1Y")))
}
