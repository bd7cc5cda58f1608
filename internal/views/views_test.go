package views

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/ziadkadry99/learnhub/internal/loader"
	"github.com/ziadkadry99/learnhub/internal/remote"
	"github.com/ziadkadry99/learnhub/internal/tabs"
)

type fakeSource struct {
	products []remote.Product
	todos    []remote.Todo
	user     *remote.RandomUserResponse
	err      error
	limit    int
}

func (f *fakeSource) Products(context.Context) ([]remote.Product, error) {
	return f.products, f.err
}

func (f *fakeSource) Todos(_ context.Context, limit int) ([]remote.Todo, error) {
	f.limit = limit
	return f.todos, f.err
}

func (f *fakeSource) RandomUser(context.Context) (*remote.RandomUserResponse, error) {
	return f.user, f.err
}

var testOptions = Options{Skeletons: 6, Courses: 9, Assignments: 12}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing %q: %v", html, err)
	}
	return doc
}

func TestCoursesLoad(t *testing.T) {
	var products []remote.Product
	for i := 0; i < 20; i++ {
		products = append(products, remote.Product{Title: "Course", Price: 12.5, Image: "https://img/x.png"})
	}
	v := &CoursesView{src: &fakeSource{products: products}, opts: testOptions}

	res := v.Load(context.Background())
	if res.Failed {
		t.Fatal("Load failed")
	}
	if res.Status != "Loaded 9 courses." {
		t.Errorf("status = %q", res.Status)
	}
	if got := res.Counters[CounterCourses]; got != "3" {
		t.Errorf("kpiCourses = %q, want 3", got)
	}
	doc := parse(t, res.HTML)
	if n := doc.Find("article.course").Length(); n != 9 {
		t.Errorf("rendered %d cards, want 9", n)
	}
	if got := doc.Find(".price").First().Text(); got != "$12.5" {
		t.Errorf("price = %q, want $12.5", got)
	}
	if got, _ := doc.Find("img").First().Attr("src"); got != "https://img/x.png" {
		t.Errorf("img src = %q", got)
	}
}

func TestCoursesLoadFailure(t *testing.T) {
	v := &CoursesView{src: &fakeSource{err: errors.New("boom")}, opts: testOptions}
	res := v.Load(context.Background())
	if !res.Failed || res.HTML != "" {
		t.Errorf("result = %+v, want failed with empty HTML", res)
	}
	if res.Status != "Failed to load courses." {
		t.Errorf("status = %q", res.Status)
	}
}

func TestCoursesEscapeTitles(t *testing.T) {
	html := RenderCourses([]Course{{Title: "<script>alert(1)</script>", Description: `"quoted" & more`}})
	if strings.Contains(html, "<script>") {
		t.Fatalf("unescaped title in %q", html)
	}
	doc := parse(t, html)
	if got := doc.Find(".course-title").Text(); got != "<script>alert(1)</script>" {
		t.Errorf("title text = %q", got)
	}
	if got := doc.Find(".course-desc").Text(); got != `"quoted" & more` {
		t.Errorf("description text = %q", got)
	}
	if doc.Find("script").Length() != 0 {
		t.Error("script element was created")
	}
}

func TestAssignmentsLoad(t *testing.T) {
	var todos []remote.Todo
	for i := 0; i < 12; i++ {
		todos = append(todos, remote.Todo{Title: "Read chapter", Completed: i < 5})
	}
	src := &fakeSource{todos: todos}
	v := &AssignmentsView{src: src, opts: testOptions}

	res := v.Load(context.Background())
	if src.limit != 12 {
		t.Errorf("requested limit %d, want 12", src.limit)
	}
	if res.Status != "Loaded 12 items." {
		t.Errorf("status = %q", res.Status)
	}
	if res.Counters[CounterPending] != "7" || res.Counters[CounterDone] != "5" {
		t.Errorf("counters = %v, want pending 7 done 5", res.Counters)
	}
	doc := parse(t, res.HTML)
	if n := doc.Find("li.todo").Length(); n != 12 {
		t.Errorf("rendered %d items, want 12", n)
	}
	if n := doc.Find("input[checked]").Length(); n != 5 {
		t.Errorf("%d checked boxes, want 5", n)
	}
	if n := doc.Find(".line-through").Length(); n != 5 {
		t.Errorf("%d struck titles, want 5", n)
	}
	if n := doc.Find(".pill-pending").Length(); n != 7 {
		t.Errorf("%d pending pills, want 7", n)
	}
}

func TestAssignmentsEmpty(t *testing.T) {
	v := &AssignmentsView{src: &fakeSource{}, opts: testOptions}
	res := v.Load(context.Background())
	if res.Failed {
		t.Fatal("empty list should not fail")
	}
	if res.Status != "Loaded 0 items." || res.HTML != "" {
		t.Errorf("result = %+v", res)
	}
	if res.Counters[CounterPending] != "0" || res.Counters[CounterDone] != "0" {
		t.Errorf("counters = %v", res.Counters)
	}
}

func TestAssignmentsFailure(t *testing.T) {
	v := &AssignmentsView{src: &fakeSource{err: errors.New("down")}, opts: testOptions}
	res := v.Load(context.Background())
	if !res.Failed || res.Status != "Failed to load assignments." {
		t.Errorf("result = %+v", res)
	}
	if len(res.Counters) != 0 {
		t.Errorf("failure changed counters: %v", res.Counters)
	}
}

func TestProfileLoad(t *testing.T) {
	var u remote.RandomUser
	u.Name.First = "Ada"
	u.Name.Last = "Lovelace"
	u.Email = "ada@example.com"
	u.Location.City = "London"
	u.Location.Country = "United Kingdom"
	u.Picture.Large = "https://img/ada.jpg"
	v := &ProfileView{src: &fakeSource{user: &remote.RandomUserResponse{Results: []remote.RandomUser{u}}}}

	res := v.Load(context.Background())
	if res.Failed || res.Status != "" {
		t.Fatalf("result = %+v", res)
	}
	doc := parse(t, res.HTML)
	if got := doc.Find(".profile-name").Text(); got != "Ada Lovelace" {
		t.Errorf("name = %q", got)
	}
	if got := doc.Find("p.muted").Last().Text(); got != "London, United Kingdom" {
		t.Errorf("location = %q", got)
	}
	if got, _ := doc.Find("img.avatar").Attr("alt"); got != "Avatar" {
		t.Errorf("alt = %q", got)
	}
}

func TestProfileFailures(t *testing.T) {
	tests := []struct {
		name string
		src  *fakeSource
	}{
		{"error", &fakeSource{err: errors.New("timeout")}},
		{"empty results", &fakeSource{user: &remote.RandomUserResponse{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := (&ProfileView{src: tt.src}).Load(context.Background())
			if !res.Failed {
				t.Fatal("expected failure")
			}
			if !strings.Contains(res.HTML, "Failed to load profile.") {
				t.Errorf("HTML = %q", res.HTML)
			}
			if res.Status != "" {
				t.Errorf("status = %q, want cleared", res.Status)
			}
		})
	}
}

func TestLoadingResults(t *testing.T) {
	src := &fakeSource{}
	tests := []struct {
		view   loader.View
		pane   string
		status string
		sel    string
		count  int
	}{
		{&CoursesView{src: src, opts: testOptions}, tabs.PaneCourses, "Fetching courses...", ".skeleton", 6},
		{&AssignmentsView{src: src, opts: testOptions}, tabs.PaneAssignments, "Fetching assignments...", "li.skeleton", 6},
		{&ProfileView{src: src}, tabs.PaneProfile, "Loading profile...", ".avatar.skeleton", 1},
	}
	for _, tt := range tests {
		t.Run(tt.pane, func(t *testing.T) {
			if got := tt.view.Pane(); got != tt.pane {
				t.Errorf("Pane() = %q, want %q", got, tt.pane)
			}
			res := tt.view.Loading()
			if res.Status != tt.status {
				t.Errorf("status = %q, want %q", res.Status, tt.status)
			}
			if n := parse(t, res.HTML).Find(tt.sel).Length(); n != tt.count {
				t.Errorf("%d %s placeholders, want %d", n, tt.sel, tt.count)
			}
		})
	}
}

func TestNewBoardRegistersPanes(t *testing.T) {
	b := NewBoard(&fakeSource{}, testOptions)
	for _, p := range []string{tabs.PaneCourses, tabs.PaneAssignments, tabs.PaneProfile} {
		if !b.Has(p) {
			t.Errorf("board missing %s", p)
		}
	}
	if b.Has(tabs.PaneOverview) {
		t.Error("overview should have no loader")
	}
}

func TestPlaceholder(t *testing.T) {
	res, ok := Placeholder(tabs.PaneProfile, testOptions)
	if !ok || res.Status != "Loading profile..." {
		t.Errorf("Placeholder(profile) = %+v, %v", res, ok)
	}
	if _, ok := Placeholder(tabs.PaneOverview, testOptions); ok {
		t.Error("overview has no placeholder")
	}
}
