package catalog

// DefaultGenreID is used for unknown categories (Drama).
const DefaultGenreID = 18

// categories is ordered by precedence: a movie's primary category is the
// first entry whose genre id it carries.
var categories = []struct {
	name    string
	genreID int
}{
	{"Action", 28},
	{"Comedy", 35},
	{"Drama", 18},
	{"Horror", 27},
	{"Romance", 10749},
	{"Sci-Fi", 878},
	{"Thriller", 53},
	{"Animation", 16},
	{"Adventure", 12},
	{"Crime", 80},
}

var genreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// Categories lists the browsable category names.
func Categories() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.name
	}
	return names
}

// CategoryGenreID maps a category name to its genre id.
func CategoryGenreID(category string) int {
	for _, c := range categories {
		if c.name == category {
			return c.genreID
		}
	}
	return DefaultGenreID
}

// PrimaryCategory picks the category for a set of genre ids.
func PrimaryCategory(genreIDs []int) string {
	for _, c := range categories {
		for _, id := range genreIDs {
			if id == c.genreID {
				return c.name
			}
		}
	}
	return "Drama"
}

func genreNamesFor(genreIDs []int) []string {
	names := make([]string, 0, len(genreIDs))
	for _, id := range genreIDs {
		if name, ok := genreNames[id]; ok {
			names = append(names, name)
		}
	}
	return names
}
