package syntax

import "testing"

func TestFromExtension(t *testing.T) {
	tests := []struct {
		ext  string
		lang Language
		ok   bool
	}{
		{".js", LangJavaScript, true},
		{".mjs", LangJavaScript, true},
		{".jsx", LangJavaScript, true},
		{".ts", LangTypeScript, true},
		{".mts", LangTypeScript, true},
		{".tsx", LangTSX, true},
		{".go", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		lang, ok := FromExtension(tt.ext)
		if ok != tt.ok || lang != tt.lang {
			t.Errorf("FromExtension(%q) = (%q, %v), want (%q, %v)", tt.ext, lang, ok, tt.lang, tt.ok)
		}
	}
}
