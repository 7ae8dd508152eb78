package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/kungfusheep/vlist"
	"gopkg.in/yaml.v3"
)

// Catalog is the launcher's content: applications, clipboard history and
// recent files.
type Catalog struct {
	Apps  []AppEntry  `yaml:"apps"`
	Clips []ClipEntry `yaml:"clips"`
	Files []string    `yaml:"files"`
}

// AppEntry is an installed application.
type AppEntry struct {
	Name string `yaml:"name"`
	Exec string `yaml:"exec"`
}

// ClipEntry is one clipboard history item.
type ClipEntry struct {
	Text string `yaml:"text"`
	Age  string `yaml:"age"`
}

// LoadCatalog reads a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return &cat, nil
}

var demoApps = []string{
	"Firefox", "Terminal", "Files", "Calculator", "Calendar", "Mail", "Music",
	"Photos", "Settings", "Text Editor", "Maps", "Weather", "Clocks", "Notes",
	"Videos", "Contacts", "Disk Usage", "System Monitor", "Software", "Camera",
	"Document Viewer", "Image Viewer", "Fonts", "Characters", "Logs", "Boxes",
}

var demoDirs = []string{
	"~/Documents", "~/Documents/reports", "~/Downloads", "~/Pictures/2024",
	"~/src/vlist", "~/src/vlist/cmd/launcher", "~/Music/albums", "~/Desktop",
}

var demoExts = []string{".md", ".go", ".pdf", ".png", ".txt", ".yaml", ".flac"}

// demoCatalog generates a deterministic catalog of the configured size.
func demoCatalog(d DemoConfig) *Catalog {
	cat := &Catalog{}
	for i := 0; i < d.Apps; i++ {
		name := demoApps[i%len(demoApps)]
		if i >= len(demoApps) {
			name = fmt.Sprintf("%s %d", name, i/len(demoApps)+1)
		}
		cat.Apps = append(cat.Apps, AppEntry{
			Name: name,
			Exec: strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		})
	}
	for i := 0; i < d.Clips; i++ {
		lines := make([]string, 1+i%5)
		for j := range lines {
			lines[j] = fmt.Sprintf("clip %d line %d", i, j+1)
		}
		cat.Clips = append(cat.Clips, ClipEntry{
			Text: strings.Join(lines, "\n"),
			Age:  fmt.Sprintf("%dm ago", i*3+1),
		})
	}
	for i := 0; i < d.Files; i++ {
		dir := demoDirs[i%len(demoDirs)]
		ext := demoExts[i%len(demoExts)]
		cat.Files = append(cat.Files, filepath.Join(dir, fmt.Sprintf("file-%05d%s", i, ext)))
	}
	return cat
}

// clipIdentity derives a stable identity from clip content, so a clip
// keeps its handle across reloads as long as its text is unchanged.
func clipIdentity(text string) vlist.Identity {
	return vlist.Identity("clip:" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(text)).String())
}

// launcher owns the catalog and turns it into engine models.
type launcher struct {
	cfg      *Config
	source   string // catalog path, empty for the demo catalog
	catalog  *Catalog
	dividers [2]*vlist.Divider
	log      *slog.Logger
}

func newLauncher(cfg *Config, source string, logger *slog.Logger) *launcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	l := &launcher{cfg: cfg, source: source, log: logger}
	for i := range l.dividers {
		l.dividers[i] = vlist.NewDivider(1, newRuleCell)
	}
	return l
}

// reload reads the catalog again.
func (l *launcher) reload() error {
	if l.source == "" {
		l.catalog = demoCatalog(l.cfg.Demo)
		return nil
	}
	cat, err := LoadCatalog(l.source)
	if err != nil {
		return err
	}
	l.catalog = cat
	l.log.Info("catalog loaded", "path", l.source,
		"apps", len(cat.Apps), "clips", len(cat.Clips), "files", len(cat.Files))
	return nil
}

// model builds a fresh model from the catalog. Dividers are reused so their
// identities stay stable across rebuilds.
func (l *launcher) model() *vlist.Model {
	cat := l.catalog
	if cat == nil {
		cat = &Catalog{}
	}

	apps := make([]vlist.Item, len(cat.Apps))
	for i, a := range cat.Apps {
		apps[i] = appItem{name: a.Name, exec: a.Exec}
	}
	clips := make([]vlist.Item, len(cat.Clips))
	for i, c := range cat.Clips {
		clips[i] = clipItem{id: clipIdentity(c.Text), text: c.Text, age: c.Age}
	}
	files := make([]vlist.Item, len(cat.Files))
	for i, f := range cat.Files {
		files[i] = fileItem{path: f}
	}

	m := vlist.NewModel()
	m.Section("Applications").
		Header(newHeader("Applications")).
		Columns(l.cfg.Grid.Columns).
		Spacing(l.cfg.Grid.Spacing).
		Add(apps...)
	m.Divider(l.dividers[0])
	m.Section("Clipboard").Header(newHeader("Clipboard")).Add(clips...)
	m.Divider(l.dividers[1])
	m.Section("Recent files").Header(newHeader("Recent files")).Add(files...)
	return m
}

// newView creates a view configured from the launcher settings.
func (l *launcher) newView() *vlist.View {
	sel, _ := parseSelectionPolicy(l.cfg.Selection)
	scroll, _ := parseScrollPolicy(l.cfg.Scroll)
	m := l.cfg.Margins

	return vlist.New().
		Margins(m.Left, m.Top, m.Right, m.Bottom).
		Policy(sel).
		Scroll(scroll).
		FrameInterval(l.cfg.Frame).
		PoolLimit(l.cfg.PoolLimit).
		Logger(l.log)
}
