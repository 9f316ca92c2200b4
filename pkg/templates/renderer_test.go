package templates_test

import (
	"bytes"
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/plinthhq/plinth/pkg/templates"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"views/hello.html": &fstest.MapFile{
			Data: []byte(`<p>Hello, {{.Name}}!</p>`),
		},
		"views/link.html": &fstest.MapFile{
			Data: []byte(`<a href="{{ urlPath "user_detail" "id" .ID }}">profile</a>`),
		},
		"views/broken.html": &fstest.MapFile{
			Data: []byte(`{{.Name`),
		},
	}
}

func TestRenderer(t *testing.T) {
	t.Parallel()

	t.Run("renders named template with data", func(t *testing.T) {
		t.Parallel()

		r := templates.New(testFS(), templates.Config{Dir: "views"})

		var buf bytes.Buffer
		err := r.Render(&buf, "hello.html", map[string]string{"Name": "World"})
		require.NoError(t, err)
		require.Equal(t, "<p>Hello, World!</p>", buf.String())
	})

	t.Run("missing template returns ErrTemplateNotFound", func(t *testing.T) {
		t.Parallel()

		r := templates.New(testFS(), templates.Config{Dir: "views"})

		var buf bytes.Buffer
		err := r.Render(&buf, "nope.html", nil)
		require.ErrorIs(t, err, templates.ErrTemplateNotFound)
	})

	t.Run("parse failure returns ErrRenderFailed", func(t *testing.T) {
		t.Parallel()

		r := templates.New(testFS(), templates.Config{Dir: "views"})

		var buf bytes.Buffer
		err := r.Render(&buf, "broken.html", nil)
		require.ErrorIs(t, err, templates.ErrRenderFailed)
	})

	t.Run("urlPath resolves through installed resolver", func(t *testing.T) {
		t.Parallel()

		r := templates.New(testFS(), templates.Config{Dir: "views"})
		r.SetURLResolver(func(name string, params ...string) (string, error) {
			require.Equal(t, "user_detail", name)
			require.Equal(t, []string{"id", "42"}, params)
			return "/users/42", nil
		})

		var buf bytes.Buffer
		err := r.Render(&buf, "link.html", map[string]string{"ID": "42"})
		require.NoError(t, err)
		require.Equal(t, `<a href="/users/42">profile</a>`, buf.String())
	})

	t.Run("urlPath errors without resolver", func(t *testing.T) {
		t.Parallel()

		r := templates.New(testFS(), templates.Config{Dir: "views"})

		var buf bytes.Buffer
		err := r.Render(&buf, "link.html", map[string]string{"ID": "42"})
		require.ErrorIs(t, err, templates.ErrRenderFailed)
	})

	t.Run("component renders the named template", func(t *testing.T) {
		t.Parallel()

		r := templates.New(testFS(), templates.Config{Dir: "views"})

		comp := r.Component("hello.html", map[string]string{"Name": "Go"})
		var buf bytes.Buffer
		require.NoError(t, comp.Render(context.Background(), &buf))
		require.Equal(t, "<p>Hello, Go!</p>", buf.String())
	})

	t.Run("cache serves repeated renders", func(t *testing.T) {
		t.Parallel()

		fsys := testFS()
		r := templates.New(fsys, templates.Config{Dir: "views"})

		var first bytes.Buffer
		require.NoError(t, r.Render(&first, "hello.html", map[string]string{"Name": "A"}))

		// Mutating the underlying file is invisible once cached.
		fsys["views/hello.html"].Data = []byte(`changed`)

		var second bytes.Buffer
		require.NoError(t, r.Render(&second, "hello.html", map[string]string{"Name": "B"}))
		require.Equal(t, "<p>Hello, B!</p>", second.String())
	})
}
