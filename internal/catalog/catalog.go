// Package catalog holds the static set of offerable movies, theaters and
// showtimes. The catalog is defined once at startup and read-only at
// runtime, so no locking is required; lookups are linear scans over a small
// literal list, which is fine at this scale.
package catalog

import "github.com/moviemagic/movie-booking/internal/model"

// Catalog is an ordered, immutable movie listing.
type Catalog struct {
	movies []model.Movie
}

// Default returns the built-in movie catalog. The order here is the order
// shown on the home page; List preserves it on every call.
func Default() *Catalog {
	return New([]model.Movie{
		{
			Title: "Getha Govindam",
			Price: 180,
			Image: "gethagovindam.jpg",
			Theaters: []model.TheaterOffering{
				{Name: "PVR Cinemas", Times: []string{"10:00 AM", "1:30 PM", "6:00 PM"}},
				{Name: "INOX", Times: []string{"11:15 AM", "2:45 PM", "8:30 PM"}},
			},
		},
		{
			Title: "Orange",
			Price: 250,
			Image: "orange.jpg",
			Theaters: []model.TheaterOffering{
				{Name: "PVR Cinemas", Times: []string{"10:00 AM", "1:30 PM", "6:00 PM"}},
				{Name: "INOX", Times: []string{"11:15 AM", "2:45 PM", "8:30 PM"}},
			},
		},
		{
			Title: "Junior",
			Price: 200,
			Image: "junior.jpg",
			Theaters: []model.TheaterOffering{
				{Name: "Asian Cinemas", Times: []string{"12:00 PM", "3:30 PM", "7:00 PM"}},
				{Name: "Sree Ramulu", Times: []string{"1:00 PM", "4:00 PM", "9:00 PM"}},
			},
		},
	})
}

// New builds a catalog from the given movies, keeping their order.
func New(movies []model.Movie) *Catalog {
	return &Catalog{movies: movies}
}

// List returns all movies in their fixed catalog order.
func (c *Catalog) List() []model.Movie {
	return c.movies
}

// Find looks a movie up by exact title. The second return value is false
// when the title is unknown; callers surface that as a 404 rather than
// redirecting, so stale links are visible.
func (c *Catalog) Find(title string) (model.Movie, bool) {
	for _, m := range c.movies {
		if m.Title == title {
			return m, true
		}
	}
	return model.Movie{}, false
}

// HasShowing reports whether the given theater actually offers the given
// showtime for the movie. Checkout rejects pairs that are not in the
// catalog instead of trusting the submitted form values.
func (c *Catalog) HasShowing(title, theater, showtime string) bool {
	m, ok := c.Find(title)
	if !ok {
		return false
	}
	for _, t := range m.Theaters {
		if t.Name != theater {
			continue
		}
		for _, tm := range t.Times {
			if tm == showtime {
				return true
			}
		}
	}
	return false
}
