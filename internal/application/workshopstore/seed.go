package workshopstore

import (
	"log/slog"

	domain "workshops/internal/domain/workshop"
)

const loremTeaser = "Lorem ipsum dolor sit amet, consectetur adipiscing elit."

// TestWorkshops returns the demo workshops used by CreateTestData.
// They vary in tag count, date and place so filtering and selection have something to chew on.
func TestWorkshops() []domain.BaseWorkshop {
	berlinMap := "https://goo.gl/maps/TS79zqdFXi2tsekE6"
	return []domain.BaseWorkshop{
		{
			ID:      24,
			Type:    "PS Workshop",
			Place:   domain.Place{Name: "Hamburg", MapURL: "https://goo.gl/maps/mbnen1jr8C81J6vU9"},
			Date:    1592212009205,
			Tags:    []string{"gelb", "blau", "grün", "rot"},
			Upvotes: 987,
			Teaser:  "Ein Workshop teaser.",
		},
		{
			ID:      1,
			Type:    "PS Workshop",
			Place:   domain.Place{Name: "Berlin"},
			Date:    1592314101605,
			Tags:    []string{"abcd", "fghi", "poiu"},
			Upvotes: 37,
			Teaser:  "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Nulla ut facilisis metus. Mauris viverra ipsum in sollicitudin porttitor. Aliquam semper dolor ante, eget pellentesque arcu malesuada a.",
		},
		{
			ID:      33,
			Type:    "Idea Workshop",
			Place:   domain.Place{Name: "Berlin", MapURL: berlinMap},
			Date:    1591316104625,
			Tags:    []string{"hjk", "sdf"},
			Upvotes: 87,
			Teaser:  loremTeaser,
		},
		{
			ID:      31,
			Type:    "Idea Workshop",
			Place:   domain.Place{Name: "Berlin", MapURL: berlinMap},
			Date:    1291316104625,
			Tags:    []string{"asdads", "asdasd", "iuiu", "uahduiasdojasd", "uhjoj", "iuoijoi", "ijojoi", "jiuhjiu"},
			Upvotes: 87,
			Teaser:  loremTeaser,
		},
		{
			ID:      93,
			Type:    "Idea Workshop",
			Place:   domain.Place{Name: "Berlin", MapURL: berlinMap},
			Date:    1191316104625,
			Tags:    []string{"hjk", "sdf", "iuoi", "ioo easda asdasd"},
			Upvotes: 87,
			Teaser:  loremTeaser,
		},
	}
}

// CreateTestData appends the demo workshops. Calling it twice lists them twice.
func (s *Store) CreateTestData() {
	seed := TestWorkshops()
	for _, w := range seed {
		s.AddWorkshop(w)
	}
	slog.Info("workshop_test_data_loaded", "count", len(seed))
}
