package artex_test

import (
	"testing"

	"github.com/fwojciec/artex"
	"github.com/stretchr/testify/assert"
)

func TestWordCount(t *testing.T) {
	t.Parallel()

	t.Run("counts words after stripping tags", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 4, artex.WordCount("<p>one <b>two</b></p><p>three four</p>"))
	})

	t.Run("tags act as word boundaries", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 2, artex.WordCount("<p>one</p><p>two</p>"))
	})

	t.Run("plain text is counted as is", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 3, artex.WordCount("  alpha\tbeta\ngamma "))
	})

	t.Run("empty and markup-only input score zero", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 0, artex.WordCount(""))
		assert.Equal(t, 0, artex.WordCount("<div><br/></div>"))
	})
}

func TestCandidate_Better(t *testing.T) {
	t.Parallel()

	short := &artex.Candidate{Content: "<p>one two</p>", Strategy: artex.StrategyPrimary}
	long := &artex.Candidate{Content: "<p>one two three</p>", Strategy: artex.StrategyAMP}
	tie := &artex.Candidate{Content: "<p>uno dos</p>", Strategy: artex.StrategyReadability}

	t.Run("higher score wins regardless of order", func(t *testing.T) {
		t.Parallel()

		assert.True(t, long.Better(short))
		assert.False(t, short.Better(long))
	})

	t.Run("equal score does not replace", func(t *testing.T) {
		t.Parallel()

		assert.False(t, tie.Better(short))
	})

	t.Run("empty candidate never wins", func(t *testing.T) {
		t.Parallel()

		var missing *artex.Candidate
		assert.False(t, missing.Better(nil))
		assert.False(t, (&artex.Candidate{}).Better(nil))
		assert.True(t, short.Better(nil))
	})
}
