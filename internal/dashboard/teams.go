package dashboard

import (
	"example.com/octofit/internal/domain"
	"example.com/octofit/internal/upstream"
	"example.com/octofit/internal/view"
)

// Teams shows one card per team.
func Teams() view.Definition {
	return view.Definition{
		Name:       "teams",
		Collection: upstream.CollectionTeams,
		Title:      "Teams",
		Layout:     view.LayoutCards,
		Empty:      "No teams found. Create your first team!",
		Card:       teamCard,
	}
}

func teamCard(_ int, rec domain.Record) view.Card {
	return view.Card{
		Title: rec.TextOr(domain.Placeholder, "name"),
		Text:  rec.Text("description"),
		Fields: []view.Field{
			{Label: "Team ID", Text: rec.TextOr(domain.Placeholder, "id"), Badge: "bg-secondary"},
			{Label: "Members", Text: rec.TextOr("0", "member_count"), Badge: "bg-info"},
		},
		Footer: "Created: " + rec.Date("created_at"),
	}
}
