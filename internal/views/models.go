// Package views holds the dashboard view-models, their render functions
// and the loaders that fill each pane.
package views

import (
	"strings"

	"github.com/ziadkadry99/learnhub/internal/remote"
)

// Course is a catalog product shown as an enrollable course.
type Course struct {
	Title       string
	Description string
	Image       string
	Price       float64
}

// Assignment is a todo shown as coursework.
type Assignment struct {
	Title     string
	Completed bool
}

// Profile is the visitor card on the profile pane.
type Profile struct {
	First   string
	Last    string
	Email   string
	City    string
	Country string
	Avatar  string
}

// FullName joins first and last name.
func (p Profile) FullName() string {
	return strings.TrimSpace(p.First + " " + p.Last)
}

// CoursesFrom converts at most limit products, preserving order.
func CoursesFrom(products []remote.Product, limit int) []Course {
	n := max(min(limit, len(products)), 0)
	out := make([]Course, 0, n)
	for _, p := range products[:n] {
		out = append(out, Course{
			Title:       p.Title,
			Description: p.Description,
			Image:       p.Image,
			Price:       p.Price,
		})
	}
	return out
}

// AssignmentsFrom converts at most limit todos, preserving order.
func AssignmentsFrom(todos []remote.Todo, limit int) []Assignment {
	n := max(min(limit, len(todos)), 0)
	out := make([]Assignment, 0, n)
	for _, t := range todos[:n] {
		out = append(out, Assignment{Title: t.Title, Completed: t.Completed})
	}
	return out
}

// ProfileFrom converts a random user.
func ProfileFrom(u remote.RandomUser) Profile {
	return Profile{
		First:   u.Name.First,
		Last:    u.Name.Last,
		Email:   u.Email,
		City:    u.Location.City,
		Country: u.Location.Country,
		Avatar:  u.Picture.Large,
	}
}

// Tally counts pending and completed assignments.
func Tally(items []Assignment) (pending, done int) {
	for _, a := range items {
		if a.Completed {
			done++
		} else {
			pending++
		}
	}
	return pending, done
}
