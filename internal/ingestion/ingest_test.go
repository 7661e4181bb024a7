package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJobText_PrefersJobSelectors(t *testing.T) {
	html := `<html><body>
		<nav>Navigation junk</nav>
		<div class="job-description">Senior Backend Engineer. Kubernetes and Postgres.</div>
		<footer>Footer junk</footer>
	</body></html>`

	text, err := ExtractJobText(html)
	require.NoError(t, err)

	assert.Contains(t, text, "Senior Backend Engineer")
	assert.NotContains(t, text, "Navigation junk")
	assert.NotContains(t, text, "Footer junk")
}

func TestExtractJobText_FallsBackToBody(t *testing.T) {
	html := `<html><body><p>Plain posting with no recognized containers.</p></body></html>`

	text, err := ExtractJobText(html)
	require.NoError(t, err)
	assert.Equal(t, "Plain posting with no recognized containers.", text)
}

func TestExtractJobText_StripsScriptsAndStyles(t *testing.T) {
	html := `<html><body><main>Real content</main><script>var x = 1;</script><style>.a{}</style></body></html>`

	text, err := ExtractJobText(html)
	require.NoError(t, err)
	assert.Equal(t, "Real content", text)
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser(strings.Repeat("x", minContentLength-1)))
	assert.False(t, ShouldUseBrowser(strings.Repeat("x", minContentLength)))
}

func TestFetchJobText_HTTPPath(t *testing.T) {
	posting := strings.Repeat("Backend engineering role with Kubernetes. ", 20)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><body><main>` + posting + `</main></body></html>`))
	}))
	defer srv.Close()

	text, err := FetchJobText(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "Backend engineering role")
}

func TestFetchJobText_InvalidURL(t *testing.T) {
	_, err := FetchJobText(context.Background(), "not-a-url")

	var ingErr *Error
	require.ErrorAs(t, err, &ingErr)
	assert.Equal(t, "invalid URL", ingErr.Message)
}

func TestFetchJobText_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := FetchJobText(context.Background(), srv.URL)

	var ingErr *Error
	require.ErrorAs(t, err, &ingErr)
	assert.Contains(t, ingErr.Message, "HTTP status 404")
}
