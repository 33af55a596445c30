package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/alexispparra/roots-sub000/internal/domain/project"
	"github.com/alexispparra/roots-sub000/internal/logger"
)

// MaxCategoryNameLength is the maximum allowed length for category names
// embedded in prompts.
const MaxCategoryNameLength = 100

// PrioritizedTask is one category in the model's suggested work order.
type PrioritizedTask struct {
	Category  string `json:"category"`
	Priority  int    `json:"priority"`
	Reasoning string `json:"reasoning"`
}

// PrioritizeCategories asks Gemini to order a project's pending categories
// by what should be worked on next, considering progress, dates and
// dependencies between categories.
func (c *Client) PrioritizeCategories(ctx context.Context, p *project.Project) ([]PrioritizedTask, error) {
	log := logger.AI()

	if c.generator == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}
	if len(p.Categories) == 0 {
		return nil, fmt.Errorf("project has no categories to prioritize")
	}

	// The enum and the prompt carry sanitized names, so responses come back
	// sanitized too; keep the mapping to restore the stored names afterwards.
	names := make([]string, 0, len(p.Categories))
	originals := make(map[string]string, len(p.Categories))
	for _, cat := range p.Categories {
		sanitized := SanitizeForPrompt(cat.Name, MaxCategoryNameLength)
		names = append(names, sanitized)
		originals[sanitized] = cat.Name
	}

	prompt := buildPrioritizationPrompt(p)

	timeoutCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	temp := float32(0.3)
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(2000),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: "You are a JSON API. You MUST respond with ONLY valid JSON, no preamble or explanation. Output a single JSON array."},
			},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"category": {
						Type:        genai.TypeString,
						Enum:        names,
						Description: "Name of the category, from the provided list",
					},
					"priority": {
						Type:        genai.TypeInteger,
						Description: "1 is the most urgent",
					},
					"reasoning": {
						Type:        genai.TypeString,
						Description: "Brief explanation for the ranking",
					},
				},
				Required: []string{"category", "priority", "reasoning"},
			},
		},
	}

	resp, err := c.generator.GenerateContent(timeoutCtx, ModelName, contents, config)
	if err != nil {
		log.Error("Prioritization call failed", "project_id", p.ID, "error", err)
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("no response from Gemini")
	}

	fullText := resp.Text()
	if fullText == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	jsonText := extractJSONArray(fullText)
	if jsonText == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var tasks []PrioritizedTask
	if err := json.Unmarshal([]byte(jsonText), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	// Keep only entries naming a category the project actually has.
	valid := tasks[:0]
	for _, task := range tasks {
		if original, ok := originals[task.Category]; ok {
			task.Category = original
		} else if _, found := p.FindCategory(task.Category); !found {
			continue
		}
		task.Reasoning = SanitizeForPrompt(task.Reasoning, 500)
		valid = append(valid, task)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("response named no known categories")
	}

	log.Info("Categories prioritized", "project_id", p.ID, "tasks", len(valid))
	return valid, nil
}

// buildPrioritizationPrompt describes the project's categories to the model.
func buildPrioritizationPrompt(p *project.Project) string {
	var b strings.Builder
	b.WriteString("Order these construction/venture budget categories by what should be worked on next.\n")
	b.WriteString("Consider: progress (finish near-done work), start/end dates (respect deadlines), and dependencies (blocked work waits).\n\nCategories:\n")

	for _, cat := range p.Categories {
		fmt.Fprintf(&b, "- %s: progress %d%%", SanitizeForPrompt(cat.Name, MaxCategoryNameLength), cat.Progress)
		if cat.StartDate != nil {
			fmt.Fprintf(&b, ", starts %s", cat.StartDate.Format("2006-01-02"))
		}
		if cat.EndDate != nil {
			fmt.Fprintf(&b, ", due %s", cat.EndDate.Format("2006-01-02"))
		}
		if len(cat.Dependencies) > 0 {
			deps := make([]string, 0, len(cat.Dependencies))
			for _, dep := range cat.Dependencies {
				deps = append(deps, SanitizeForPrompt(dep, MaxCategoryNameLength))
			}
			fmt.Fprintf(&b, ", depends on: %s", strings.Join(deps, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nReturn a JSON array: [{\"category\": \"exact name\", \"priority\": 1, \"reasoning\": \"brief explanation\"}]")
	return b.String()
}

// extractJSONArray extracts a JSON array from text that may contain preamble.
func extractJSONArray(text string) string {
	text = strings.TrimSpace(text)

	start := strings.Index(text, "[")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(text, "]")
	if end == -1 || end <= start {
		return ""
	}
	return text[start : end+1]
}

// SanitizeForPrompt sanitizes user input to prevent prompt injection attacks.
// It removes or escapes characters that could break prompt structure,
// and truncates to the given maxLength.
func SanitizeForPrompt(input string, maxLength int) string {
	input = strings.ReplaceAll(input, `"`, `'`)
	input = strings.ReplaceAll(input, "`", "'")
	input = strings.ReplaceAll(input, "\x00", "")
	input = strings.Join(strings.Fields(input), " ")

	if len(input) > maxLength {
		input = strings.TrimSpace(input[:maxLength])
	}
	return input
}
