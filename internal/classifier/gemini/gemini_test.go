package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinoosan/smartbudget/internal/categorize"
)

type fakeModel struct {
	prompt string
	answer string
	err    error
}

func (f *fakeModel) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	if len(parts) > 0 {
		if t, ok := parts[0].(genai.Text); ok {
			f.prompt = string(t)
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Text(f.answer)}}}},
	}, nil
}

var known = []string{"Food", "Transportation", "Health"}

func TestParseCategory(t *testing.T) {
	cases := map[string]string{
		"Category: Food":                       "Food",
		"category: transportation\nbecause...": "Transportation",
		`Category: "Health". It is medical.`:   "Health",
		"Category: Pets":                       "Pets",
		"I think this is food, honestly":       "Food",
		"no idea":                              "",
		"Category: none":                       "",
		"Category: None.":                      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseCategory(in, known), in)
	}
}

func TestClassify(t *testing.T) {
	m := &fakeModel{answer: "Category: Food"}
	c := &Classifier{model: m, categories: known, fallback: "Other"}
	got, err := c.Classify(context.Background(), "Lunch at the bistro")
	require.NoError(t, err)
	assert.Equal(t, "Food", got)
	assert.Contains(t, m.prompt, "Lunch at the bistro")
	assert.True(t, strings.Contains(m.prompt, "Transportation"))
	assert.Contains(t, m.prompt, `"Category: none"`)
	assert.NotContains(t, m.prompt, "Other")
}

func TestClassify_UnsureAnswersGiveNoSuggestion(t *testing.T) {
	for _, answer := range []string{"Category: Other", "Category: other", "Category: none"} {
		c := &Classifier{model: &fakeModel{answer: answer}, categories: known, fallback: "Other"}
		got, err := c.Classify(context.Background(), "uber ride")
		require.NoError(t, err, answer)
		assert.Empty(t, got, answer)
	}
}

func TestClassify_KeywordsDecideWhenModelIsUnsure(t *testing.T) {
	cl := &Classifier{model: &fakeModel{answer: "Category: Other"}, categories: known, fallback: "Other"}
	c := categorize.New(categorize.WithClassifier(cl))
	assert.Equal(t, "Transportation", c.Categorize(context.Background(), "uber ride"))

	cl = &Classifier{model: &fakeModel{answer: "Category: Health"}, categories: known, fallback: "Other"}
	c = categorize.New(categorize.WithClassifier(cl))
	assert.Equal(t, "Health", c.Categorize(context.Background(), "uber ride"))
}

func TestClassify_Errors(t *testing.T) {
	c := &Classifier{model: &fakeModel{err: errors.New("quota")}, categories: known}
	_, err := c.Classify(context.Background(), "x")
	assert.Error(t, err)

	c = &Classifier{model: &fakeModel{answer: "  "}, categories: known}
	_, err = c.Classify(context.Background(), "x")
	assert.Error(t, err)
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(context.Background(), " ", "", known, "Other")
	assert.Error(t, err)
}
