package model

// Movie is a single catalog entry. The catalog is defined at startup and
// never mutated, so movies carry no database identifiers; the title acts as
// the human key and must be unique within the catalog.
//
// Fields:
//  Title    – unique human-readable key used in URLs (/booking/:title).
//  Price    – ticket price per seat in whole currency units.
//  Image    – filename of the poster image served from static assets.
//  Theaters – ordered list of theaters offering this movie.
type Movie struct {
	Title    string
	Price    int
	Image    string
	Theaters []TheaterOffering
}

// TheaterOffering pairs a theater name with its ordered showtimes for one
// movie. Showtimes are display strings ("1:30 PM"); they are compared
// verbatim, never parsed.
type TheaterOffering struct {
	Name  string
	Times []string
}
