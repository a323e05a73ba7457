package imageurl_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amodkhurasiya/tribal-crafts-server/imageurl"
)

func TestResolve(t *testing.T) {
	r := imageurl.NewResolver("http://localhost:5000", "http://localhost:8080")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty falls back to placeholder", "", imageurl.Placeholder},
		{"data url untouched", "data:image/png;base64,iVBOR", "data:image/png;base64,iVBOR"},
		{"absolute http untouched", "http://cdn.example.com/x.jpg", "http://cdn.example.com/x.jpg"},
		{"absolute https untouched", "https://cdn.example.com/x.jpg", "https://cdn.example.com/x.jpg"},
		{"protocol relative gets https", "//cdn.example.com/x.jpg", "https://cdn.example.com/x.jpg"},
		{"doubled uploads collapsed", "/uploads/uploads/foo.jpg", "http://localhost:5000/uploads/foo.jpg"},
		{"uploads path on backend", "/uploads/foo.jpg", "http://localhost:5000/uploads/foo.jpg"},
		{"cloudinary without scheme", "res.cloudinary.com/demo/x.jpg", "https://res.cloudinary.com/demo/x.jpg"},
		{"root relative on site", "/images/products/pot.jpg", "http://localhost:8080/images/products/pot.jpg"},
		{"stray uploads path rebuilt", "some/dir/uploads/bar.png", "http://localhost:5000/uploads/bar.png"},
		{"bare filename under site images", "foo.jpg", "http://localhost:8080/images/foo.jpg"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, r.Resolve(tc.in))
		})
	}
}

func TestResolveTrimsTrailingSlashes(t *testing.T) {
	r := imageurl.NewResolver("http://localhost:5000/", "http://localhost:8080/")
	require.Equal(t, "http://localhost:5000/uploads/foo.jpg", r.Resolve("/uploads/foo.jpg"))
	require.Equal(t, "http://localhost:8080/images/foo.jpg", r.Resolve("foo.jpg"))
}
