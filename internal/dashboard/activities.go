package dashboard

import (
	"example.com/octofit/internal/domain"
	"example.com/octofit/internal/upstream"
	"example.com/octofit/internal/view"
)

// Activities lists logged activities as a table.
func Activities() view.Definition {
	return view.Definition{
		Name:       "activities",
		Collection: upstream.CollectionActivities,
		Title:      "Activities",
		Layout:     view.LayoutTable,
		Columns: []view.Column{
			{Label: "#"},
			{Label: "User"},
			{Label: "Activity Type"},
			{Label: "Duration (min)"},
			{Label: "Distance (km)"},
			{Label: "Calories"},
			{Label: "Date"},
		},
		Empty: "No activities found",
		Row:   activityRow,
	}
}

func activityRow(_ int, rec domain.Record) view.Row {
	return view.Row{Cells: []view.Cell{
		{Text: rec.Text("id"), Header: true},
		{Text: rec.TextOr(domain.Placeholder, "user", "user_email"), Badge: "bg-secondary"},
		{Text: rec.TextOr(domain.Placeholder, "activity_type"), Badge: "bg-info text-dark"},
		{Text: rec.TextOr("0", "duration")},
		{Text: rec.TextOr("0", "distance")},
		{Text: rec.TextOr("0", "calories_burned", "calories"), Badge: "bg-success"},
		{Text: rec.Date("date")},
	}}
}
