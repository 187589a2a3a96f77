package dashboard

import (
	"example.com/octofit/internal/domain"
	"example.com/octofit/internal/upstream"
	"example.com/octofit/internal/view"
)

// Workouts shows personalized workout suggestions as cards.
func Workouts() view.Definition {
	return view.Definition{
		Name:       "workouts",
		Collection: upstream.CollectionWorkouts,
		Title:      "Personalized Workouts",
		Layout:     view.LayoutCards,
		Empty:      "No workouts found",
		Card:       workoutCard,
	}
}

// difficultyBadge maps the open difficulty set; anything unknown gets the danger style.
func difficultyBadge(difficulty string) string {
	switch difficulty {
	case "Easy":
		return "bg-success"
	case "Medium":
		return "bg-warning"
	default:
		return "bg-danger"
	}
}

func workoutCard(_ int, rec domain.Record) view.Card {
	difficulty := rec.Text("difficulty")
	fields := []view.Field{
		{Label: "Description", Text: rec.TextOr(domain.Placeholder, "description")},
		{Label: "Duration", Text: rec.TextOr("0", "duration") + " minutes"},
		{Label: "Difficulty", Text: difficulty, Badge: difficultyBadge(difficulty)},
		{Label: "Category", Text: rec.TextOr(domain.Placeholder, "category")},
	}
	if rec.Has("user") {
		fields = append(fields, view.Field{Label: "Assigned to", Text: rec.Text("user"), Muted: true})
	}
	return view.Card{
		Title:  rec.TextOr(domain.Placeholder, "name"),
		Fields: fields,
		Footer: "Created: " + rec.Date("created_at"),
	}
}
