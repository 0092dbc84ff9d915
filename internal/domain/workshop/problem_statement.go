package workshop

// ContentKindProblemStatements identifies ProblemStatementContent.
const ContentKindProblemStatements = "problem_statements"

// ProblemStatement is one statement collected during a problem-statement workshop.
// RelatedItems holds the ids of related statements.
type ProblemStatement struct {
	ID            int    `json:"id"`
	OwnerID       int    `json:"ownerId"`
	OwnerRole     string `json:"ownerRole"`
	TitlePhrase   string `json:"titlePhrase"`
	CounterPhrase string `json:"counterPhrase"`
	ReasonPhrase  string `json:"reasonPhrase"`
	EmotionPhrase string `json:"emotionPhrase"`
	RelatedItems  []int  `json:"relatedItems"`
}

// ProblemStatementContent is the content variant holding an ordered list of problem statements.
type ProblemStatementContent struct {
	ProblemStatements []ProblemStatement `json:"problemStatements"`
}

// ContentKind implements Content.
func (ProblemStatementContent) ContentKind() string {
	return ContentKindProblemStatements
}
