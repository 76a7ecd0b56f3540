package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Parser implements artex.Parser at compile time.
var _ artex.Parser = (*trafilatura.Parser)(nil)

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Best Running Gloves 2025 - Runner's Site</title>
<meta property="og:title" content="The Best Running Gloves">
</head>
<body>
<nav>Navigation here</nav>
<main>
<h1>The Best Running Gloves</h1>
<p>This is the main content of the review page about keeping your hands warm.</p>
</main>
<footer>Footer content</footer>
</body>
</html>`

		p := trafilatura.NewParser()
		c, err := p.Parse("https://example.com/gloves", html)

		require.NoError(t, err)
		assert.NotEmpty(t, c.Title)
		assert.Equal(t, artex.StrategyPrimary, c.Strategy)
	})

	t.Run("extracts main content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/">Home</a><a href="/reviews">Reviews</a></nav>
<article>
<h1>Winter Running</h1>
<p>This is important article content that should be extracted by the parser.</p>
<p>A second paragraph explains how thin liners compare with insulated mittens.</p>
</article>
<aside>Sidebar content</aside>
<footer>Copyright 2025</footer>
</body>
</html>`

		p := trafilatura.NewParser()
		c, err := p.Parse("https://example.com/winter", html)

		require.NoError(t, err)
		assert.Contains(t, c.Content, "important article content")
		assert.Positive(t, c.Score())
	})

	t.Run("removes footer boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<h1>Article</h1>
<p>This is the main article content that should be preserved in the output.</p>
</article>
<footer>
<p>Copyright 2025 Example Publishing. All rights reserved.</p>
</footer>
</body>
</html>`

		p := trafilatura.NewParser()
		c, err := p.Parse("https://example.com/a", html)

		require.NoError(t, err)
		assert.NotContains(t, c.Content, "All rights reserved")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		p := trafilatura.NewParser()
		_, err := p.Parse("https://example.com", "  ")

		require.Error(t, err)
		assert.Equal(t, artex.EINVALID, artex.ErrorCode(err))
	})

	t.Run("accepts a relative page URL", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html><html><head><title>Minimal</title></head><body><p>Hello world</p></body></html>`

		p := trafilatura.NewParser()
		_, err := p.Parse("/relative", html)

		require.NoError(t, err)
	})
}
