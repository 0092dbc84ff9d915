package workshopstore

import (
	"context"

	domain "workshops/internal/domain/workshop"
)

// PlaceholderFacilitators are attached to every workshop loaded through PlaceholderDetails.
var PlaceholderFacilitators = []string{"Anna", "Paul"}

// PlaceholderDetails stands in for the workshop backend: it decorates the
// listed workshop with fixed facilitators, public visibility and sample
// problem statements.
type PlaceholderDetails struct{}

// FetchWorkshop implements DetailSource.
// PRE: base is a listed workshop
// POST: Returns a full workshop built from base and the placeholder content; never fails
func (PlaceholderDetails) FetchWorkshop(_ context.Context, base domain.BaseWorkshop) (domain.Workshop[domain.Content], error) {
	return domain.Workshop[domain.Content]{
		BaseWorkshop: base,
		Facilitators: append([]string(nil), PlaceholderFacilitators...),
		Visibility:   domain.VisibilityPublic,
		Content:      PlaceholderContent(),
	}, nil
}

// PlaceholderContent returns the sample problem statements, ids 1 to 3.
func PlaceholderContent() domain.ProblemStatementContent {
	owners := []int{456, 245, 49}
	statements := make([]domain.ProblemStatement, 0, len(owners))
	for i, owner := range owners {
		statements = append(statements, domain.ProblemStatement{
			ID:            i + 1,
			OwnerID:       owner,
			OwnerRole:     "Supporter",
			TitlePhrase:   "dass was passiert",
			CounterPhrase: "es passiert nichts",
			ReasonPhrase:  "Gründe",
			EmotionPhrase: "traurig",
			RelatedItems:  []int{},
		})
	}
	return domain.ProblemStatementContent{ProblemStatements: statements}
}
