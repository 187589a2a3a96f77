package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type renderData struct {
	Def   Definition
	State State
	Rows  []Row
	Cards []Card
}

// Render writes the HTML for the current snapshot.
func (v *View) Render(w io.Writer) error {
	return RenderState(w, v.def, v.Snapshot())
}

// RenderState writes the HTML for state under def. The output depends only on
// its arguments and records are never modified.
func RenderState(w io.Writer, def Definition, state State) error {
	data := renderData{Def: def, State: state}
	if state.Phase == PhaseReady {
		for i, rec := range state.Records {
			switch def.Layout {
			case LayoutTable:
				data.Rows = append(data.Rows, def.Row(i, rec))
			case LayoutCards:
				data.Cards = append(data.Cards, def.Card(i, rec))
			}
		}
	}
	if err := templates.ExecuteTemplate(w, "view", data); err != nil {
		return fmt.Errorf("render view %s: %w", def.Name, err)
	}
	return nil
}
