package quiz

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/vocadays/internal/wordpool"
)

func newItems(n int) []wordpool.VocabItem {
	items := make([]wordpool.VocabItem, n)
	for i := range items {
		items[i] = wordpool.VocabItem{
			ID:         fmt.Sprintf("item-%d", i+1),
			Headword:   fmt.Sprintf("Word%d", i+1),
			Definition: fmt.Sprintf("definition %d", i+1),
		}
	}
	return items
}

func TestParseType(t *testing.T) {
	tests := []struct {
		value   string
		want    Type
		wantErr bool
	}{
		{value: "choice", want: TypeChoice},
		{value: " Spelling ", want: TypeSpelling},
		{value: "matching", want: TypeMatching},
		{value: "essay", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseType(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckAnswer(t *testing.T) {
	tests := []struct {
		name     string
		question Question
		answer   string
		want     bool
	}{
		{
			name:     "spelling ignores surrounding whitespace",
			question: Question{Type: TypeSpelling, Answer: "apple"},
			answer:   " Apple ",
			want:     true,
		},
		{
			name:     "choice ignores case",
			question: Question{Type: TypeChoice, Answer: "A round fruit"},
			answer:   "a round fruit",
			want:     true,
		},
		{
			name:     "matching compares both sides trimmed",
			question: Question{Type: TypeMatching, Answer: " glad "},
			answer:   "GLAD",
			want:     true,
		},
		{
			name:     "different word",
			question: Question{Type: TypeSpelling, Answer: "apple"},
			answer:   "apples",
			want:     false,
		},
		{
			name:     "empty answer",
			question: Question{Type: TypeSpelling, Answer: "apple"},
			answer:   "",
			want:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckAnswer(tt.question, tt.answer))
		})
	}
}

func TestGenerator_Choice(t *testing.T) {
	tests := []struct {
		name          string
		items         []wordpool.VocabItem
		wantQuestions int
		wantOptions   int
	}{
		{name: "caps at twenty questions", items: newItems(25), wantQuestions: MaxQuestions, wantOptions: MaxOptions},
		{name: "four items", items: newItems(4), wantQuestions: 4, wantOptions: 4},
		{name: "too few items for three distractors", items: newItems(2), wantQuestions: 2, wantOptions: 2},
		{name: "single item", items: newItems(1), wantQuestions: 1, wantOptions: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions, err := NewGenerator(1).Generate(tt.items, TypeChoice)
			require.NoError(t, err)
			require.Len(t, questions, tt.wantQuestions)

			seen := map[string]struct{}{}
			for _, question := range questions {
				assert.Equal(t, question.Item.Definition, question.Answer)
				assert.Equal(t, question.Item.Headword, question.Prompt)
				assert.Len(t, question.Options, tt.wantOptions)
				assert.Contains(t, question.Options, question.Answer)

				unique := slices.Compact(slices.Sorted(slices.Values(question.Options)))
				assert.Len(t, unique, len(question.Options))

				assert.NotContains(t, seen, question.Item.ID)
				seen[question.Item.ID] = struct{}{}
			}
		})
	}
}

func TestGenerator_ChoiceSkipsDuplicateDefinitions(t *testing.T) {
	items := newItems(5)
	items[1].Definition = items[0].Definition
	items[2].Definition = items[3].Definition

	questions, err := NewGenerator(3).Generate(items, TypeChoice)
	require.NoError(t, err)
	for _, question := range questions {
		unique := slices.Compact(slices.Sorted(slices.Values(question.Options)))
		assert.Len(t, unique, len(question.Options))
		assert.Contains(t, question.Options, question.Answer)
	}
}

func TestGenerator_Spelling(t *testing.T) {
	items := []wordpool.VocabItem{
		{ID: "apple", Headword: "  Apple ", Definition: "a round fruit"},
	}
	questions, err := NewGenerator(1).Generate(items, TypeSpelling)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "apple", questions[0].Answer)
	assert.Equal(t, "a round fruit", questions[0].Prompt)
	assert.Empty(t, questions[0].Options)
}

func TestGenerator_Matching(t *testing.T) {
	items := []wordpool.VocabItem{
		{ID: "happy", Headword: "happy", Definition: "feeling joy", Synonyms: []string{"glad", "cheerful"}, Antonyms: []string{"sad"}},
		{ID: "big", Headword: "big", Definition: "large", Synonyms: []string{"large"}},
		{ID: "cold", Headword: "cold", Definition: "low temperature", Antonyms: []string{"hot"}},
		{ID: "table", Headword: "table", Definition: "furniture"},
	}

	for seed := int64(1); seed <= 20; seed++ {
		questions, err := NewGenerator(seed).Generate(items, TypeMatching)
		require.NoError(t, err)
		require.Len(t, questions, 3)

		for _, question := range questions {
			assert.NotEqual(t, "table", question.Item.ID)
			assert.Contains(t, question.Prompt, string(question.Relation))
			assert.Contains(t, question.Options, question.Answer)

			switch question.Item.ID {
			case "big":
				assert.Equal(t, RelationSynonym, question.Relation)
			case "cold":
				assert.Equal(t, RelationAntonym, question.Relation)
			}
			switch question.Relation {
			case RelationSynonym:
				assert.Contains(t, question.Item.Synonyms, question.Answer)
			case RelationAntonym:
				assert.Contains(t, question.Item.Antonyms, question.Answer)
			}
			for _, option := range question.Options {
				if option == question.Answer {
					continue
				}
				assert.NotContains(t, question.Item.Synonyms, option)
				assert.NotContains(t, question.Item.Antonyms, option)
			}
		}
	}
}

func TestGenerator_MatchingWithoutRelations(t *testing.T) {
	questions, err := NewGenerator(1).Generate(newItems(3), TypeMatching)
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestGenerator_Deterministic(t *testing.T) {
	items := newItems(30)
	first, err := NewGenerator(99).Generate(items, TypeChoice)
	require.NoError(t, err)
	second, err := NewGenerator(99).Generate(items, TypeChoice)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = NewGenerator(99).Generate(items, Type("essay"))
	assert.ErrorIs(t, err, ErrUnknownType)
}
