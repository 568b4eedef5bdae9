// Package quiz generates, times and scores vocabulary quizzes.
package quiz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/at-ishikawa/vocadays/internal/random"
	"github.com/at-ishikawa/vocadays/internal/wordpool"
)

const (
	// MaxQuestions caps a session. Items beyond it are dropped after the pre-shuffle.
	MaxQuestions = 20
	// MaxOptions is the number of options of a question when enough data exists.
	MaxOptions = 4
)

var ErrUnknownType = errors.New("unknown quiz type")

type Type string

const (
	TypeChoice   Type = "choice"
	TypeSpelling Type = "spelling"
	TypeMatching Type = "matching"
)

// Types returns every quiz type.
func Types() []Type {
	return []Type{TypeChoice, TypeSpelling, TypeMatching}
}

func ParseType(value string) (Type, error) {
	for _, quizType := range Types() {
		if string(quizType) == strings.ToLower(strings.TrimSpace(value)) {
			return quizType, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, value)
}

// Relation is the kind of word a matching question asks for.
type Relation string

const (
	RelationSynonym Relation = "synonym"
	RelationAntonym Relation = "antonym"
)

// Question is one quiz question built from an item.
type Question struct {
	Item   wordpool.VocabItem
	Type   Type
	Prompt string
	Answer string
	// Options are displayed for choice and matching questions.
	Options []string
	// Relation is set for matching questions.
	Relation Relation
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// CheckAnswer compares case-insensitively after trimming surrounding whitespace.
func CheckAnswer(question Question, answer string) bool {
	return normalize(answer) == normalize(question.Answer)
}

// Generator builds question lists. All randomness comes from one seeded LCG.
type Generator struct {
	rng *random.LCG
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: random.New(seed)}
}

// Generate shuffles items, keeps at most MaxQuestions of them and builds one question per item.
// Matching drops items without synonyms and antonyms first.
func (g *Generator) Generate(items []wordpool.VocabItem, quizType Type) ([]Question, error) {
	candidates := items
	switch quizType {
	case TypeChoice, TypeSpelling:
	case TypeMatching:
		candidates = nil
		for _, item := range items {
			if item.HasRelations() {
				candidates = append(candidates, item)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, quizType)
	}

	shuffled := random.Shuffled(g.rng, candidates)
	if len(shuffled) > MaxQuestions {
		shuffled = shuffled[:MaxQuestions]
	}

	questions := make([]Question, 0, len(shuffled))
	for _, item := range shuffled {
		switch quizType {
		case TypeChoice:
			questions = append(questions, g.choice(item, items))
		case TypeSpelling:
			questions = append(questions, spelling(item))
		case TypeMatching:
			questions = append(questions, g.matching(item, items))
		}
	}
	return questions, nil
}

func (g *Generator) choice(item wordpool.VocabItem, all []wordpool.VocabItem) Question {
	var others []string
	for _, other := range all {
		if other.ID != item.ID {
			others = append(others, other.Definition)
		}
	}
	return Question{
		Item:    item,
		Type:    TypeChoice,
		Prompt:  item.Headword,
		Answer:  item.Definition,
		Options: g.options(item.Definition, others, nil),
	}
}

func spelling(item wordpool.VocabItem) Question {
	return Question{
		Item:   item,
		Type:   TypeSpelling,
		Prompt: item.Definition,
		Answer: normalize(item.Headword),
	}
}

func (g *Generator) matching(item wordpool.VocabItem, all []wordpool.VocabItem) Question {
	relation, words := RelationSynonym, item.Synonyms
	if len(item.Synonyms) == 0 || !g.rng.Bool() {
		if len(item.Antonyms) > 0 {
			relation, words = RelationAntonym, item.Antonyms
		}
	}
	answer := words[g.rng.Intn(len(words))]

	// Words related to the item in any way would be ambiguous distractors.
	excluded := append([]string{item.Headword}, item.Synonyms...)
	excluded = append(excluded, item.Antonyms...)
	var others []string
	for _, other := range all {
		if other.ID == item.ID {
			continue
		}
		others = append(others, other.Synonyms...)
		others = append(others, other.Antonyms...)
	}

	return Question{
		Item:     item,
		Type:     TypeMatching,
		Prompt:   fmt.Sprintf("%s of %q", relation, item.Headword),
		Answer:   answer,
		Options:  g.options(answer, others, excluded),
		Relation: relation,
	}
}

// options shuffles candidates, takes the first MaxOptions-1 that differ from the answer,
// from each other and from excluded, and shuffles them together with the answer.
func (g *Generator) options(answer string, candidates, excluded []string) []string {
	taken := map[string]struct{}{normalize(answer): {}}
	for _, value := range excluded {
		taken[normalize(value)] = struct{}{}
	}

	options := []string{answer}
	for _, candidate := range random.Shuffled(g.rng, candidates) {
		if len(options) == MaxOptions {
			break
		}
		if _, ok := taken[normalize(candidate)]; ok {
			continue
		}
		taken[normalize(candidate)] = struct{}{}
		options = append(options, candidate)
	}
	random.Shuffle(g.rng, options)
	return options
}
