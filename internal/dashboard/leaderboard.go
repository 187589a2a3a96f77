package dashboard

import (
	"strconv"

	"example.com/octofit/internal/domain"
	"example.com/octofit/internal/upstream"
	"example.com/octofit/internal/view"
)

// Leaderboard shows standings. Rank is the position the server returned the
// entry at; it is never recomputed here.
func Leaderboard() view.Definition {
	return view.Definition{
		Name:       "leaderboard",
		Collection: upstream.CollectionLeaderboard,
		Title:      "Leaderboard",
		Lead:       "Top performers by total points",
		Layout:     view.LayoutTable,
		Columns: []view.Column{
			{Label: "Rank", Centered: true},
			{Label: "User"},
			{Label: "Team"},
			{Label: "Total Points", Centered: true},
			{Label: "Activities", Centered: true},
		},
		Empty: "No leaderboard data available",
		Row:   leaderboardRow,
	}
}

func rankBadge(index int) string {
	switch index {
	case 0:
		return "bg-warning text-dark fs-6"
	case 1:
		return "bg-secondary fs-6"
	case 2:
		return "bg-danger fs-6"
	default:
		return "bg-light text-dark fs-6"
	}
}

func leaderboardRow(index int, rec domain.Record) view.Row {
	team := view.Cell{Text: domain.Placeholder, Muted: true}
	if rec.Has("team") {
		team = view.Cell{Text: rec.Text("team"), Badge: "bg-primary"}
	}
	return view.Row{Cells: []view.Cell{
		{Text: strconv.Itoa(index + 1), Badge: rankBadge(index), Centered: true},
		{Text: rec.TextOr(domain.Placeholder, "user", "user_name"), Strong: true},
		team,
		{Text: rec.TextOr("0", "total_points", "total_calories"), Badge: "bg-success fs-6", Centered: true},
		{Text: rec.TextOr("0", "activity_count", "total_activities"), Badge: "bg-info text-dark", Centered: true},
	}}
}
