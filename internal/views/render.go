package views

import (
	"strconv"

	"github.com/ziadkadry99/learnhub/internal/markup"
)

// RenderCourses renders one card per course.
func RenderCourses(courses []Course) string {
	var b markup.Builder
	for _, c := range courses {
		b.Raw(`<article class="card course">`)
		b.Raw(`<img class="course-img"`).Attr("src", c.Image).Attr("alt", c.Title).Raw(">")
		b.Raw(`<h3 class="course-title">`).Text(c.Title).Raw("</h3>")
		b.Raw(`<p class="course-desc muted">`).Text(c.Description).Raw("</p>")
		b.Raw(`<div class="course-footer">`)
		b.Raw(`<span class="price">$`).Text(formatPrice(c.Price)).Raw("</span>")
		b.Raw(`<button class="btn-primary btn-sm" type="button">Enroll</button>`)
		b.Raw("</div></article>")
	}
	return b.String()
}

// RenderAssignments renders one list item per assignment.
func RenderAssignments(items []Assignment) string {
	var b markup.Builder
	for _, a := range items {
		b.Raw(`<li class="card todo">`)
		b.Raw(`<input type="checkbox" class="todo-check"`)
		if a.Completed {
			b.Raw(" checked")
		}
		b.Raw(" disabled>")
		b.Raw("<div>")
		if a.Completed {
			b.Raw(`<p class="todo-title line-through">`)
		} else {
			b.Raw(`<p class="todo-title">`)
		}
		b.Text(a.Title).Raw("</p>")
		if a.Completed {
			b.Raw(`<span class="pill pill-done">Completed</span>`)
		} else {
			b.Raw(`<span class="pill pill-pending">Pending</span>`)
		}
		b.Raw("</div></li>")
	}
	return b.String()
}

// RenderProfile renders the avatar and contact lines.
func RenderProfile(p Profile) string {
	var b markup.Builder
	b.Raw(`<img class="avatar"`).Attr("src", p.Avatar).Raw(` alt="Avatar">`)
	b.Raw("<div>")
	b.Raw(`<h3 class="profile-name">`).Text(p.FullName()).Raw("</h3>")
	b.Raw(`<p class="muted">`).Text(p.Email).Raw("</p>")
	b.Raw(`<p class="muted">`).Text(p.City).Raw(", ").Text(p.Country).Raw("</p>")
	b.Raw("</div>")
	return b.String()
}

// profileFailure is shown in place of the card when the profile cannot load.
const profileFailure = `<div class="notice">Failed to load profile.</div>`

// formatPrice prints the shortest decimal form, as the catalog sends it.
func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
