package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/alexispparra/roots-sub000/internal/domain/project"
)

// mockGenerator implements ContentGenerator for tests.
type mockGenerator struct {
	response *genai.GenerateContentResponse
	err      error
}

func (m *mockGenerator) GenerateContent(
	_ context.Context,
	_ string,
	_ []*genai.Content,
	_ *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	return m.response, m.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: text},
					},
				},
			},
		},
	}
}

func testProject() *project.Project {
	p := project.New("Obra", "", "", "a@x.com", "Ana")
	p.Categories = []project.Category{
		{Name: "Demolición", Progress: 100, Dependencies: []string{}},
		{Name: "Materiales", Progress: 40, Dependencies: []string{"Demolición"}},
		{Name: "Pintura", Progress: 0, Dependencies: []string{"Materiales"}},
	}
	return p
}

func TestPrioritizeCategories(t *testing.T) {
	t.Parallel()

	t.Run("parses priority order", func(t *testing.T) {
		t.Parallel()
		client := NewClientWithGenerator(&mockGenerator{
			response: textResponse(`[
				{"category": "Materiales", "priority": 1, "reasoning": "in progress and unblocks painting"},
				{"category": "Pintura", "priority": 2, "reasoning": "waiting on materials"}
			]`),
		})

		tasks, err := client.PrioritizeCategories(context.Background(), testProject())
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		require.Equal(t, "Materiales", tasks[0].Category)
		require.Equal(t, 1, tasks[0].Priority)
		require.NotEmpty(t, tasks[0].Reasoning)
	})

	t.Run("tolerates preamble around the JSON", func(t *testing.T) {
		t.Parallel()
		client := NewClientWithGenerator(&mockGenerator{
			response: textResponse("Here is the ranking:\n" +
				`[{"category": "Materiales", "priority": 1, "reasoning": "next up"}]`),
		})

		tasks, err := client.PrioritizeCategories(context.Background(), testProject())
		require.NoError(t, err)
		require.Len(t, tasks, 1)
	})

	t.Run("drops unknown category names", func(t *testing.T) {
		t.Parallel()
		client := NewClientWithGenerator(&mockGenerator{
			response: textResponse(`[
				{"category": "Inventada", "priority": 1, "reasoning": "hallucinated"},
				{"category": "Pintura", "priority": 2, "reasoning": "real"}
			]`),
		})

		tasks, err := client.PrioritizeCategories(context.Background(), testProject())
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		require.Equal(t, "Pintura", tasks[0].Category)
	})

	t.Run("restores names altered by sanitization", func(t *testing.T) {
		t.Parallel()
		p := project.New("Obra", "", "", "a@x.com", "Ana")
		p.Categories = []project.Category{
			{Name: `Baño "principal"`, Progress: 10, Dependencies: []string{}},
		}
		// The schema enum carries the sanitized form, so that is what the
		// model echoes back.
		client := NewClientWithGenerator(&mockGenerator{
			response: textResponse(`[{"category": "Baño 'principal'", "priority": 1, "reasoning": "x"}]`),
		})

		tasks, err := client.PrioritizeCategories(context.Background(), p)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		require.Equal(t, `Baño "principal"`, tasks[0].Category)
	})

	t.Run("fails when nothing matches", func(t *testing.T) {
		t.Parallel()
		client := NewClientWithGenerator(&mockGenerator{
			response: textResponse(`[{"category": "Inventada", "priority": 1, "reasoning": "x"}]`),
		})

		_, err := client.PrioritizeCategories(context.Background(), testProject())
		require.Error(t, err)
	})

	t.Run("propagates API errors", func(t *testing.T) {
		t.Parallel()
		client := NewClientWithGenerator(&mockGenerator{err: errors.New("quota exceeded")})

		_, err := client.PrioritizeCategories(context.Background(), testProject())
		require.Error(t, err)
	})

	t.Run("rejects project without categories", func(t *testing.T) {
		t.Parallel()
		client := NewClientWithGenerator(&mockGenerator{})
		p := project.New("Obra", "", "", "a@x.com", "Ana")

		_, err := client.PrioritizeCategories(context.Background(), p)
		require.Error(t, err)
	})
}

func TestSanitizeForPrompt(t *testing.T) {
	t.Parallel()

	require.Equal(t, "it's 'quoted'", SanitizeForPrompt("it's \"quoted\"", 100))
	require.Equal(t, "one two", SanitizeForPrompt("one\n\n  two\t", 100))
	require.Equal(t, "abc", SanitizeForPrompt("abcdef", 3))
}
