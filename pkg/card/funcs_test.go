package card

import (
	"bytes"
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CTAG07/Sashizume/pkg/title"
)

func TestCSSColor(t *testing.T) {
	tests := []struct {
		token string
		want  template.CSS
	}{
		{"from-rose-500", "#f43f5e"},
		{"to-orange-400", "#fb923c"},
		{"emerald-500", "#10b981"},
		{"from-unknown-900", fallbackColor},
		{"", fallbackColor},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, cssColor(tt.token))
		})
	}
}

func TestCSSColor_CoversEveryPalette(t *testing.T) {
	for _, p := range title.Palettes() {
		assert.NotEqual(t, template.CSS(fallbackColor), cssColor(p.From), "palette %s", p.Name)
		assert.NotEqual(t, template.CSS(fallbackColor), cssColor(p.To), "palette %s", p.Name)
	}
}

func TestGradient(t *testing.T) {
	p := title.Palette{Name: "Grape", From: "from-violet-500", To: "to-pink-400"}
	assert.Equal(t, template.CSS("linear-gradient(135deg, #8b5cf6, #f472b6)"), gradient(p))
}

func TestNl2br(t *testing.T) {
	assert.Equal(t, template.HTML("a<br>&lt;b&gt;<br>"), nl2br("a\n<b>\n"))
	assert.Equal(t, template.HTML(""), nl2br(""))
}

func TestQRDataURIFunc(t *testing.T) {
	m := setupTestManager(t, nil)

	uri, err := m.qrDataURI("https://example.com/")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(uri), "data:image/png;base64,"))

	uri, err = m.qrDataURI("  ")
	require.NoError(t, err)
	assert.Empty(t, uri)
}

func TestJoinInTemplate(t *testing.T) {
	m := setupTestManager(t, map[string]string{
		"tags.tmpl.html": `{{join .Tags " "}}`,
	})
	var buf bytes.Buffer
	require.NoError(t, m.Execute(&buf, "tags.tmpl.html", title.Build("旅", 0)))
	assert.Equal(t, "#さしずめ俺は #診断メーカー #称号 #旅", buf.String())
}
