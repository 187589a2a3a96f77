// Package dashboard binds the five OctoFit views to the upstream API and lays
// them out as pages.
package dashboard

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"

	"example.com/octofit/internal/view"
)

// ErrViewNotFound is returned for an unknown view name.
var ErrViewNotFound = errors.New("view not found")

// Definitions returns the dashboard views in navigation order.
func Definitions() []view.Definition {
	return []view.Definition{Activities(), Leaderboard(), Teams(), Users(), Workouts()}
}

// Service mounts views against a fetcher.
type Service struct {
	fetcher view.Fetcher
	logger  *slog.Logger
	defs    []view.Definition
	byName  map[string]view.Definition
}

// NewService constructs a Service over the given definitions, or over
// Definitions() when none are given.
func NewService(fetcher view.Fetcher, logger *slog.Logger, defs ...view.Definition) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(defs) == 0 {
		defs = Definitions()
	}
	byName := make(map[string]view.Definition, len(defs))
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, dup := byName[def.Name]; dup {
			return nil, fmt.Errorf("duplicate view %q", def.Name)
		}
		byName[def.Name] = def
	}
	return &Service{fetcher: fetcher, logger: logger, defs: defs, byName: byName}, nil
}

// Definitions returns the views served, in navigation order.
func (s *Service) Definitions() []view.Definition {
	return s.defs
}

// Lookup returns the definition registered under name.
func (s *Service) Lookup(name string) (view.Definition, bool) {
	def, ok := s.byName[name]
	return def, ok
}

// Mount creates a fresh view instance and starts its fetch.
func (s *Service) Mount(ctx context.Context, name string) (*view.View, error) {
	def, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrViewNotFound, name)
	}
	v := view.New(def, s.fetcher, s.logger)
	v.Mount(ctx)
	return v, nil
}

// MountAll mounts every view. The fetches run concurrently and independently;
// a failing view never affects its siblings.
func (s *Service) MountAll(ctx context.Context) []*view.View {
	views := make([]*view.View, 0, len(s.defs))
	for _, def := range s.defs {
		v := view.New(def, s.fetcher, s.logger)
		v.Mount(ctx)
		views = append(views, v)
	}
	return views
}

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type navLink struct {
	Name   string
	Title  string
	Active bool
}

type pageData struct {
	Title string
	Nav   []navLink
	Views []template.HTML
}

// RenderPage writes a full HTML page with navigation around the views' current
// render output. active names the highlighted navigation entry.
func (s *Service) RenderPage(w io.Writer, title, active string, views ...*view.View) error {
	data := pageData{Title: title}
	for _, def := range s.defs {
		data.Nav = append(data.Nav, navLink{Name: def.Name, Title: def.Title, Active: def.Name == active})
	}
	for _, v := range views {
		var buf bytes.Buffer
		if err := v.Render(&buf); err != nil {
			return err
		}
		// Rendered by html/template, already escaped.
		data.Views = append(data.Views, template.HTML(buf.String()))
	}
	if err := pageTemplate.ExecuteTemplate(w, "page", data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
