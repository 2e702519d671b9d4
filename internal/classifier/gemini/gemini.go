// Package gemini asks a Google Gemini model to categorise transaction descriptions.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-1.5-flash"

// noCategory is the answer the model gives when it has no suggestion.
const noCategory = "none"

// generator is the part of *genai.GenerativeModel the classifier needs.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Classifier implements categorize.Classifier on top of Gemini.
type Classifier struct {
	client     *genai.Client
	model      generator
	categories []string
	fallback   string
}

// New opens a Gemini client. categories lists the labels the model may pick;
// fallback is the label it is told to use when unsure.
func New(ctx context.Context, apiKey, model string, categories []string, fallback string) (*Classifier, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	m := client.GenerativeModel(model)
	m.Temperature = genai.Ptr[float32](0)
	m.SystemInstruction = genai.NewUserContent(genai.Text("You are a financial transaction categorizer for a personal budget."))
	return &Classifier{client: client, model: m, categories: categories, fallback: fallback}, nil
}

// Close releases the underlying client.
func (c *Classifier) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Classify returns the model's category for description, or "" when the
// answer cannot be parsed.
func (c *Classifier) Classify(ctx context.Context, description string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(c.prompt(description)))
	if err != nil {
		return "", fmt.Errorf("gemini: generate: %w", err)
	}
	text := responseText(resp)
	if text == "" {
		return "", errors.New("gemini: empty response")
	}
	cat := ParseCategory(text, c.categories)
	if c.fallback != "" && strings.EqualFold(cat, c.fallback) {
		// The default label is the keyword table's call, not the model's.
		return "", nil
	}
	return cat, nil
}

func (c *Classifier) prompt(description string) string {
	return fmt.Sprintf(`Categorize the following expense into the most appropriate category from the list below.

Description: %s

Available categories:
%s

If none of the categories fit or you are unsure, respond with "Category: %s".
Respond in this exact format: "Category: [category name]"`,
		description, strings.Join(c.categories, "\n"), noCategory)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if b.Len() > 0 {
			break
		}
	}
	return strings.TrimSpace(b.String())
}

// ParseCategory extracts the label from a "Category: X" answer. Without the
// prefix it looks for a known category among the words of the answer and
// returns "" when none is found. An explicit "none" answer also yields "".
func ParseCategory(response string, known []string) string {
	idx := strings.Index(strings.ToLower(response), "category:")
	if idx == -1 {
		for _, word := range strings.Fields(response) {
			word = strings.Trim(word, ",.;:\"'()*")
			for _, k := range known {
				if strings.EqualFold(word, k) {
					return k
				}
			}
		}
		return ""
	}
	name := strings.TrimSpace(response[idx+len("category:"):])
	end := len(name)
	if nl := strings.IndexByte(name, '\n'); nl != -1 {
		end = nl
	}
	if dot := strings.IndexByte(name, '.'); dot != -1 && dot < end {
		end = dot
	}
	name = strings.Trim(strings.TrimSpace(name[:end]), "\"'*[]")
	if strings.EqualFold(name, noCategory) {
		return ""
	}
	for _, k := range known {
		if strings.EqualFold(name, k) {
			return k
		}
	}
	return name
}
