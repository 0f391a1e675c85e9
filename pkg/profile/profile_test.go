package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"main.go", LangGo},
		{"lib.rs", LangRust},
		{"app.js", LangJavaScript},
		{"app.mjs", LangJavaScript},
		{"component.tsx", LangTypeScript},
		{"script.py", LangPython},
		{"Main.java", LangJava},
		{"engine.cpp", LangCPP},
		{"util.h", LangC},
		{"Program.cs", LangCSharp},
		{"index.php", LangPHP},
		{"page.html", LangHTML},
		{"style.scss", LangCSS},
		{"dir/nested/file.CSS", LangCSS},
	}

	for _, tt := range tests {
		p := Detect(tt.path)
		require.NotNil(t, p, "Detect(%s)", tt.path)
		assert.Equal(t, tt.want, p.Language, "Detect(%s)", tt.path)
	}
}

func TestDetectUnsupported(t *testing.T) {
	assert.Nil(t, Detect("image.png"))
	assert.Nil(t, Detect("archive.tar.gz"))
	assert.Nil(t, Detect("Makefile"))
}

func TestByLanguage(t *testing.T) {
	p := ByLanguage(LangGo)
	require.NotNil(t, p)
	assert.Equal(t, BlockBrace, p.BlockStyle)
	assert.Nil(t, ByLanguage(LangUnknown))
}

func TestProfilesComplete(t *testing.T) {
	for _, p := range All() {
		assert.NotEmpty(t, p.Extensions, "%s has no extensions", p.Language)
		if p.Language != LangHTML {
			assert.NotEmpty(t, p.StringQuotes, "%s has no string quotes", p.Language)
		}
		assert.GreaterOrEqual(t, p.HandlingQuality, 0.0, "%s", p.Language)
		assert.LessOrEqual(t, p.HandlingQuality, 1.0, "%s", p.Language)
		if !p.IsMarkup() {
			assert.NotEmpty(t, p.ControlKeywords, "%s has no control keywords", p.Language)
		}
	}
}

func TestMarkupProfiles(t *testing.T) {
	assert.True(t, ByLanguage(LangHTML).IsMarkup())
	assert.True(t, ByLanguage(LangCSS).IsMarkup())
	assert.False(t, ByLanguage(LangPython).IsMarkup())
}
