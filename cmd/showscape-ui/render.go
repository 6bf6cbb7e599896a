package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"showscape/internal/frontend"

	"github.com/fatih/color"
)

type renderer struct {
	mu  sync.Mutex
	out io.Writer

	title   *color.Color
	label   *color.Color
	errText *color.Color
	okText  *color.Color
	dim     *color.Color
}

func newRenderer(out io.Writer) *renderer {
	return &renderer{
		out:     out,
		title:   color.New(color.FgCyan, color.Bold),
		label:   color.New(color.FgYellow),
		errText: color.New(color.FgRed),
		okText:  color.New(color.FgGreen),
		dim:     color.New(color.Faint),
	}
}

func (r *renderer) list(s frontend.ListState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch s.Status {
	case frontend.StatusLoading:
		r.dim.Fprintln(r.out, "Loading movies...")
		return
	case frontend.StatusError:
		r.errText.Fprintf(r.out, "Error: %s\n", s.Err)
		return
	}

	r.label.Fprint(r.out, "Filter: ")
	fmt.Fprintln(r.out, describeFilter(s))
	if len(s.Genres) > 0 || len(s.Years) > 0 {
		r.dim.Fprintf(r.out, "Genres: %s | Years: %s\n", strings.Join(s.Genres, ", "), joinInts(s.Years))
	}

	if len(s.Movies) == 0 {
		fmt.Fprintln(r.out, "No movies available. Add some with 'add'.")
		return
	}
	for i := range s.Movies {
		r.movie(&s.Movies[i])
	}
}

func (r *renderer) movie(m *frontend.Movie) {
	r.title.Fprintf(r.out, "#%d %s\n", m.ID, m.Title)
	r.label.Fprint(r.out, "  Genre: ")
	fmt.Fprintf(r.out, "%s  ", m.Genre)
	r.label.Fprint(r.out, "Release Date: ")
	fmt.Fprintf(r.out, "%s  ", m.ReleaseDate)
	r.label.Fprint(r.out, "Rating: ")
	fmt.Fprintln(r.out, strconv.FormatFloat(m.Rating, 'f', -1, 64))
	if m.Description != "" {
		r.dim.Fprintf(r.out, "  %s\n", m.Description)
	}
}

func (r *renderer) form(s frontend.FormState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.Err != "" {
		r.errText.Fprintf(r.out, "Error: %s\n", s.Err)
	}
	if s.Success != "" {
		r.okText.Fprintln(r.out, s.Success)
	}
}

func (r *renderer) errorf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errText.Fprintf(r.out, format+"\n", args...)
}

func (r *renderer) println(a ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, a...)
}

func describeFilter(s frontend.ListState) string {
	switch {
	case s.GenreFilter != "":
		return "genre " + s.GenreFilter
	case s.YearFilter != 0:
		return "year " + strconv.Itoa(s.YearFilter)
	default:
		return "all movies"
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
