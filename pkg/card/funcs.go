package card

import (
	"html/template"
	"strings"

	"github.com/CTAG07/Sashizume/pkg/title"
)

// fallbackColor is used for palette tokens with no known colour.
const fallbackColor = "#737373"

// tailwindColors maps the Tailwind colour tokens used by the palettes to hex.
var tailwindColors = map[string]string{
	"fuchsia-500": "#d946ef",
	"amber-400":   "#fbbf24",
	"emerald-400": "#34d399",
	"emerald-500": "#10b981",
	"cyan-500":    "#06b6d4",
	"sky-400":     "#38bdf8",
	"indigo-500":  "#6366f1",
	"rose-500":    "#f43f5e",
	"orange-400":  "#fb923c",
	"violet-500":  "#8b5cf6",
	"pink-400":    "#f472b6",
	"lime-400":    "#a3e635",
}

func (m *Manager) makeFuncMap() template.FuncMap {
	return template.FuncMap{
		"cssColor":  cssColor,
		"gradient":  gradient,
		"nl2br":     nl2br,
		"qrDataURI": m.qrDataURI,
		"intentURL": title.IntentURL,
		"join":      strings.Join,
	}
}

// cssColor converts a gradient token such as "from-rose-500" to a hex colour.
func cssColor(token string) template.CSS {
	token = strings.TrimPrefix(token, "from-")
	token = strings.TrimPrefix(token, "to-")
	if hex, ok := tailwindColors[token]; ok {
		return template.CSS(hex)
	}
	return template.CSS(fallbackColor)
}

// gradient returns the CSS background for a palette.
func gradient(p title.Palette) template.CSS {
	return template.CSS("linear-gradient(135deg, " + string(cssColor(p.From)) + ", " + string(cssColor(p.To)) + ")")
}

// nl2br escapes s and turns its line breaks into <br> elements.
func nl2br(s string) template.HTML {
	return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
}

// qrDataURI returns an empty URL when QR codes are disabled or content is blank,
// so templates can guard the img with a plain if.
func (m *Manager) qrDataURI(content string) (template.URL, error) {
	cfg := m.Config()
	if !cfg.QREnabled || strings.TrimSpace(content) == "" {
		return "", nil
	}
	uri, err := QRDataURI(content, cfg.QRSize)
	if err != nil {
		return "", err
	}
	return template.URL(uri), nil
}
