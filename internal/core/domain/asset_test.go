package domain_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stitch/internal/core/domain"
)

func TestAsset_Body(t *testing.T) {
	chunks := [][]byte{[]byte("// header\n"), []byte("var a;\n"), []byte("a();\n")}
	asset := domain.NewAsset(domain.Metadata{
		LogicalPath:     "application.js",
		Digest:          "abc",
		Length:          21,
		FormatExtension: ".js",
	}, chunks)

	var got [][]byte
	for c := range asset.Each() {
		got = append(got, c)
	}
	assert.Equal(t, chunks, got)
	assert.Equal(t, "// header\nvar a;\na();\n", asset.String())
	assert.Equal(t, asset.String(), string(asset.Bytes()))

	var buf bytes.Buffer
	n, err := asset.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(21), n)
	assert.Equal(t, asset.String(), buf.String())
}

func TestAsset_DigestPath(t *testing.T) {
	tests := []struct {
		name    string
		logical string
		ext     string
		want    string
	}{
		{name: "js", logical: "application.js", ext: ".js", want: "application-abc.js"},
		{name: "nested", logical: "admin/app.css", ext: ".css", want: "admin/app-abc.css"},
		{name: "no extension", logical: "application", ext: "", want: "application-abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := domain.NewAsset(domain.Metadata{LogicalPath: tt.logical, FormatExtension: tt.ext, Digest: "abc"}, nil)
			assert.Equal(t, tt.want, a.DigestPath())
		})
	}
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "application/javascript", domain.ContentTypeFor(".js", nil))
	assert.Equal(t, "text/css", domain.ContentTypeFor(".css", nil))
	assert.Equal(t, domain.DefaultContentType, domain.ContentTypeFor(".bin", nil))
	assert.Equal(t, "text/x-custom", domain.ContentTypeFor(".js", map[string]string{".js": "text/x-custom"}))

	table := domain.DefaultContentTypes()
	table[".js"] = "mutated"
	assert.Equal(t, "application/javascript", domain.ContentTypeFor(".js", nil), "defaults are copied")
}
