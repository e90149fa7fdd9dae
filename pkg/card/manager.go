package card

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/CTAG07/Sashizume/pkg/title"
)

// CardTemplate is the name of the template Render executes.
const CardTemplate = "card.tmpl.html"

// ErrTemplateNotFound is returned by Execute for a name that is not loaded.
var ErrTemplateNotFound = errors.New("template not found")

//go:embed templates/*.html
var defaultTemplates embed.FS

// Page is the data a card template is executed with.
type Page struct {
	Result    title.Result
	Permalink string
	// Keyword is the value shown in the keyword input, which differs from
	// Result.Keyword when an empty submission fell back to the default keyword.
	Keyword  string
	Examples []string
}

// NewPage builds the Page for r, with a permalink against base. The permalink
// carries keyword as typed, so an empty submission shares an empty keyword.
func NewPage(base string, r title.Result, keyword string) (Page, error) {
	ref := title.ReferenceOf(r)
	ref.Keyword = keyword
	link, err := title.Permalink(base, ref)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Result:    r,
		Permalink: link,
		Keyword:   keyword,
		Examples:  title.ExampleKeywords,
	}, nil
}

// Manager loads and executes card templates.
// All methods are safe for concurrent use.
type Manager struct {
	logger        *slog.Logger
	config        *CardConfig
	templates     *template.Template
	templateNames []string
	funcMap       template.FuncMap
	now           func() time.Time
	mu            sync.RWMutex
}

// NewManager creates a Manager and performs the initial Refresh.
// A nil logger discards output.
func NewManager(logger *slog.Logger, config CardConfig) (*Manager, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := &Manager{
		logger: logger,
		config: &config,
		now:    time.Now,
	}
	m.funcMap = m.makeFuncMap()

	if err := m.Refresh(); err != nil {
		return nil, err
	}

	logger.Info("Card manager initialized")
	return m, nil
}

// Config returns a copy of the current configuration.
func (m *Manager) Config() CardConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return *m.config
}

// Refresh reparses the embedded templates and, if a TemplateDir is configured,
// the templates found there.
func (m *Manager) Refresh() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	parsed, err := template.New("").Funcs(m.funcMap).ParseFS(defaultTemplates, "templates/*.html")
	if err != nil {
		m.logger.Error("failed to parse embedded templates", "error", err)
		return fmt.Errorf("parse embedded templates: %w", err)
	}

	if dir := m.config.TemplateDir; dir != "" {
		m.logger.Info("Loading template overrides...", "dir", dir)
		for _, pattern := range []string{"*.tmpl.html", "*.part.html"} {
			if _, err = parsed.ParseGlob(filepath.Join(dir, pattern)); err != nil {
				if !strings.Contains(err.Error(), "pattern matches no files") {
					m.logger.Error("failed to parse template overrides", "pattern", pattern, "error", err)
					return fmt.Errorf("parse %s in %s: %w", pattern, dir, err)
				}
			}
		}
	}

	var names []string
	for _, t := range parsed.Templates() {
		if strings.HasSuffix(t.Name(), ".tmpl.html") {
			names = append(names, t.Name())
		}
	}
	slices.Sort(names)
	if parsed.Lookup(CardTemplate) == nil {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, CardTemplate)
	}

	m.templates = parsed
	m.templateNames = names
	m.logger.Info("Loaded card templates", "count", len(names))
	return nil
}

// Execute renders the named template to w.
func (m *Manager) Execute(w io.Writer, name string, data any) error {
	m.mu.RLock()
	set := m.templates
	m.mu.RUnlock()

	t := set.Lookup(name)
	if t == nil {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return t.Execute(w, data)
}

// Render renders the card page for p.
func (m *Manager) Render(w io.Writer, p Page) error {
	return m.Execute(w, CardTemplate, p)
}

// TemplateNames returns the names of the loaded full-page templates.
func (m *Manager) TemplateNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, len(m.templateNames))
	copy(names, m.templateNames)
	return names
}
