package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnippet(t *testing.T) {
	t.Parallel()

	t.Run("whitespace collapsed", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Contact us at info@acme.fr", Snippet("Contact\n\tus   at info@acme.fr"))
	})

	t.Run("control characters removed", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "a b", Snippet("a\x00\x01b"))
	})

	t.Run("long text truncated with ellipsis", func(t *testing.T) {
		t.Parallel()
		got := Snippet(strings.Repeat("x", 500))
		assert.LessOrEqual(t, len(got), SnippetMaxLen+len("…"))
		assert.True(t, strings.HasSuffix(got, "…"))
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", Snippet(""))
	})
}
