package card

// CardConfig holds all configuration options for the card renderer.
type CardConfig struct {
	// TemplateDir is an optional directory of *.tmpl.html and *.part.html files.
	// Files found there are parsed after the embedded defaults, so a file that
	// defines an existing template replaces it.
	TemplateDir string `json:"template_dir" env:"SASHIZUME_TEMPLATE_DIR"`

	// QREnabled controls whether cards carry a QR code of their permalink.
	QREnabled bool `json:"qr_enabled" env:"SASHIZUME_QR_ENABLED"`

	// QRSize is the edge length of generated QR codes in pixels.
	QRSize int `json:"qr_size" env:"SASHIZUME_QR_SIZE"`

	// BaseURL is the public address permalinks are built against.
	BaseURL string `json:"base_url" env:"SASHIZUME_BASE_URL"`
}

// DefaultConfig returns a CardConfig that renders with the embedded templates only.
func DefaultConfig() CardConfig {
	return CardConfig{
		TemplateDir: "",
		QREnabled:   true,
		QRSize:      defaultQRSize,
		BaseURL:     "http://localhost:7277/",
	}
}
