package card

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/natefinch/atomic"
)

const exportPrefix = "sashizume_"

// ExportFiles lists the files written by Export. PNG is empty when QR codes are disabled.
type ExportFiles struct {
	HTML string `json:"html"`
	PNG  string `json:"png,omitempty"`
}

// Export writes the rendered card for p, and a QR code of its permalink, into
// dir as sashizume_<unix-ms>.html and .png. dir is created if needed.
func (m *Manager) Export(dir string, p Page) (ExportFiles, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ExportFiles{}, fmt.Errorf("create export dir: %w", err)
	}
	base := filepath.Join(dir, exportPrefix+strconv.FormatInt(m.now().UnixMilli(), 10))

	var page bytes.Buffer
	if err := m.Render(&page, p); err != nil {
		return ExportFiles{}, fmt.Errorf("render card: %w", err)
	}

	var files ExportFiles
	cfg := m.Config()
	if cfg.QREnabled {
		png, err := QRCode(p.Permalink, cfg.QRSize)
		if err != nil {
			return ExportFiles{}, err
		}
		files.PNG = base + ".png"
		if err = atomic.WriteFile(files.PNG, bytes.NewReader(png)); err != nil {
			return ExportFiles{}, fmt.Errorf("write %s: %w", files.PNG, err)
		}
	}

	files.HTML = base + ".html"
	if err := atomic.WriteFile(files.HTML, &page); err != nil {
		return ExportFiles{}, fmt.Errorf("write %s: %w", files.HTML, err)
	}

	m.logger.Info("Exported card", "html", files.HTML, "png", files.PNG)
	return files, nil
}
