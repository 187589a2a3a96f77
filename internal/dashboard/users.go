package dashboard

import (
	"example.com/octofit/internal/domain"
	"example.com/octofit/internal/upstream"
	"example.com/octofit/internal/view"
)

// Users lists registered users as a table.
func Users() view.Definition {
	return view.Definition{
		Name:       "users",
		Collection: upstream.CollectionUsers,
		Title:      "Users",
		Layout:     view.LayoutTable,
		Columns: []view.Column{
			{Label: "#"},
			{Label: "Name"},
			{Label: "Email"},
			{Label: "Team"},
			{Label: "Date Joined"},
		},
		Empty: "No users found",
		Row:   userRow,
	}
}

func userRow(_ int, rec domain.Record) view.Row {
	email := view.Cell{Text: domain.Placeholder, Muted: true}
	if rec.Has("email") {
		address := rec.Text("email")
		email = view.Cell{Text: address, Href: "mailto:" + address}
	}
	team := view.Cell{Text: "No team", Muted: true}
	if rec.Has("team") {
		team = view.Cell{Text: rec.Text("team"), Badge: "bg-primary"}
	}
	return view.Row{Cells: []view.Cell{
		{Text: rec.Text("id"), Header: true},
		{Text: rec.TextOr(domain.Placeholder, "name"), Strong: true},
		email,
		team,
		{Text: rec.Date("created_at")},
	}}
}
