package quiz

// DefaultDistractors is the number of wrong answers offered next to the right one.
const DefaultDistractors = 3

// Item is one read-only dataset entry as the quiz sees it.
type Item struct {
	// ID uniquely identifies the item (the element symbol).
	ID string

	// Prompt is what the question displays.
	Prompt string

	// Group is a display category carried through to the question for styling.
	Group string

	// Correct is the right answer value.
	Correct string

	// Wrong is the pool of candidate distractors.
	Wrong []string
}

// Answer is one selectable choice.
type Answer struct {
	Value   string
	Correct bool
}

// Question is a presentable unit built from one Item. It is immutable once
// built; the quiz compares questions by ID.
type Question struct {
	ID      string
	Prompt  string
	Group   string
	Answers []Answer
}

// CorrectAnswer returns the answer tagged correct.
func (q *Question) CorrectAnswer() Answer {
	for _, a := range q.Answers {
		if a.Correct {
			return a
		}
	}
	return Answer{}
}

// Builder turns items into questions.
type Builder struct {
	rng         Source
	distractors int
}

// NewBuilder creates a Builder that offers n distractors per question. A
// non-positive n falls back to DefaultDistractors.
func NewBuilder(rng Source, n int) *Builder {
	if n <= 0 {
		n = DefaultDistractors
	}
	return &Builder{rng: rng, distractors: n}
}

// Build creates a question with the correct answer and up to n sampled
// distractors, shuffled. Each call shuffles independently.
func (b *Builder) Build(item Item) *Question {
	wrong := Sample(b.rng, item.Wrong, b.distractors)

	answers := make([]Answer, 0, len(wrong)+1)
	answers = append(answers, Answer{Value: item.Correct, Correct: true})
	for _, v := range wrong {
		answers = append(answers, Answer{Value: v})
	}

	return &Question{
		ID:      item.ID,
		Prompt:  item.Prompt,
		Group:   item.Group,
		Answers: Shuffled(b.rng, answers),
	}
}
