// Package prompts renders the model prompts from embedded text templates.
package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	"text/template"

	"github.com/eshaffer321/bank-assistant-go/internal/analytics"
	"github.com/eshaffer321/bank-assistant-go/internal/models"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const (
	Insights = "insights.tmpl"
	Chat     = "chat.tmpl"
)

// ChatData is the account context rendered into a chat prompt
type ChatData struct {
	Message          string
	Balance          decimal.Decimal
	TransactionCount int
	MonthSpent       decimal.Decimal
	MonthReceived    decimal.Decimal
	Recent           []models.Transaction
	Contacts         []models.Contact
}

var funcs = template.FuncMap{
	"money": money,
}

// Loader parses templates from the embedded filesystem and caches them
type Loader struct {
	cache map[string]*template.Template
	mu    sync.RWMutex
}

// NewLoader creates a new template loader
func NewLoader() *Loader {
	return &Loader{
		cache: make(map[string]*template.Template),
	}
}

// Load returns the parsed template for a name such as "chat.tmpl"
func (l *Loader) Load(name string) (*template.Template, error) {
	// Check cache first
	l.mu.RLock()
	if tmpl, ok := l.cache[name]; ok {
		l.mu.RUnlock()
		return tmpl, nil
	}
	l.mu.RUnlock()

	content, err := templatesFS.ReadFile(path.Join("templates", name))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load prompt %s", name)
	}

	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse prompt %s", name)
	}

	l.mu.Lock()
	l.cache[name] = tmpl
	l.mu.Unlock()

	return tmpl, nil
}

// Preload parses every embedded prompt so a broken template fails at startup
func (l *Loader) Preload() error {
	names, err := l.List()
	if err != nil {
		return err
	}
	for _, name := range names {
		if _, err := l.Load(name); err != nil {
			return err
		}
	}
	return nil
}

// Render executes the named template with data
func (l *Loader) Render(name string, data interface{}) (string, error) {
	tmpl, err := l.Load(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "failed to render prompt %s", name)
	}
	return buf.String(), nil
}

// InsightsPrompt renders the financial report prompt
func (l *Loader) InsightsPrompt(a *analytics.Analytics) (string, error) {
	return l.Render(Insights, a)
}

// ChatPrompt renders the chat prompt
func (l *Loader) ChatPrompt(data ChatData) (string, error) {
	return l.Render(Chat, data)
}

// List returns all available prompt names
func (l *Loader) List() ([]string, error) {
	var names []string

	err := fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			names = append(names, d.Name())
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list prompts")
	}

	return names, nil
}

func money(v interface{}) string {
	switch n := v.(type) {
	case decimal.Decimal:
		return n.StringFixed(2)
	case float64:
		return decimal.NewFromFloat(n).StringFixed(2)
	case int:
		return decimal.NewFromInt(int64(n)).StringFixed(2)
	default:
		return fmt.Sprint(v)
	}
}
