package views

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/ziadkadry99/learnhub/internal/loader"
	"github.com/ziadkadry99/learnhub/internal/markup"
	"github.com/ziadkadry99/learnhub/internal/remote"
	"github.com/ziadkadry99/learnhub/internal/tabs"
)

// Counter names shown on the overview pane.
const (
	CounterCourses = "kpiCourses"
	CounterPending = "kpiPending"
	CounterDone    = "kpiDone"
)

// enrolledPlaceholder is the fixed enrollment count shown after courses load.
const enrolledPlaceholder = "3"

// Source is the upstream data the loaders read.
type Source interface {
	Products(ctx context.Context) ([]remote.Product, error)
	Todos(ctx context.Context, limit int) ([]remote.Todo, error)
	RandomUser(ctx context.Context) (*remote.RandomUserResponse, error)
}

// Options sizes the panes.
type Options struct {
	Skeletons   int
	Courses     int
	Assignments int
}

// CoursesView loads the catalog into the courses grid.
type CoursesView struct {
	src  Source
	opts Options
}

func (v *CoursesView) Pane() string { return tabs.PaneCourses }

func (v *CoursesView) Loading() loader.Result {
	return loader.Result{HTML: markup.LoaderGrid(v.opts.Skeletons), Status: "Fetching courses..."}
}

func (v *CoursesView) Load(ctx context.Context) loader.Result {
	products, err := v.src.Products(ctx)
	if err != nil {
		log.Printf("views: loading courses: %v", err)
		return loader.Result{Failed: true, Status: "Failed to load courses."}
	}
	courses := CoursesFrom(products, v.opts.Courses)
	return loader.Result{
		HTML:     RenderCourses(courses),
		Status:   fmt.Sprintf("Loaded %d courses.", len(courses)),
		Counters: map[string]string{CounterCourses: enrolledPlaceholder},
	}
}

// AssignmentsView loads todos into the assignment list.
type AssignmentsView struct {
	src  Source
	opts Options
}

func (v *AssignmentsView) Pane() string { return tabs.PaneAssignments }

func (v *AssignmentsView) Loading() loader.Result {
	return loader.Result{HTML: markup.LoaderList(v.opts.Skeletons), Status: "Fetching assignments..."}
}

func (v *AssignmentsView) Load(ctx context.Context) loader.Result {
	todos, err := v.src.Todos(ctx, v.opts.Assignments)
	if err != nil {
		log.Printf("views: loading assignments: %v", err)
		return loader.Result{Failed: true, Status: "Failed to load assignments."}
	}
	items := AssignmentsFrom(todos, v.opts.Assignments)
	pending, done := Tally(items)
	return loader.Result{
		HTML:   RenderAssignments(items),
		Status: fmt.Sprintf("Loaded %d items.", len(items)),
		Counters: map[string]string{
			CounterPending: strconv.Itoa(pending),
			CounterDone:    strconv.Itoa(done),
		},
	}
}

// ProfileView loads one random user into the profile card.
type ProfileView struct {
	src Source
}

// errNoProfile is returned when the profile API answers with no results.
var errNoProfile = errors.New("no profile in response")

func (v *ProfileView) Pane() string { return tabs.PaneProfile }

func (v *ProfileView) Loading() loader.Result {
	return loader.Result{HTML: markup.SkeletonProfile(), Status: "Loading profile..."}
}

func (v *ProfileView) Load(ctx context.Context) loader.Result {
	resp, err := v.src.RandomUser(ctx)
	if err == nil && len(resp.Results) == 0 {
		err = errNoProfile
	}
	if err != nil {
		log.Printf("views: loading profile: %v", err)
		return loader.Result{HTML: profileFailure, Failed: true}
	}
	return loader.Result{HTML: RenderProfile(ProfileFrom(resp.Results[0]))}
}

// New returns the three dashboard loaders.
func New(src Source, opts Options) []loader.View {
	return []loader.View{
		&CoursesView{src: src, opts: opts},
		&AssignmentsView{src: src, opts: opts},
		&ProfileView{src: src},
	}
}

// NewBoard returns a board wired with the three dashboard loaders.
func NewBoard(src Source, opts Options) *loader.Board {
	return loader.NewBoard(New(src, opts)...)
}

// Placeholder returns the loading content of pane, for pages rendered
// before the first load is issued.
func Placeholder(pane string, opts Options) (loader.Result, bool) {
	for _, v := range New(nil, opts) {
		if v.Pane() == pane {
			return v.Loading(), true
		}
	}
	return loader.Result{}, false
}
