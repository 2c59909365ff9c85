package gemini

import (
	"fmt"
	"strings"

	"github.com/fwojciec/docsearch"
	"google.golang.org/genai"
)

// Response schema property names.
const (
	fieldTopic   = "topic"
	fieldProject = "project"
	fieldTeam    = "team"
)

// Request is the generateContent request body.
type Request struct {
	Contents          []*genai.Content  `json:"contents"`
	SystemInstruction *genai.Content    `json:"systemInstruction"`
	GenerationConfig  *GenerationConfig `json:"generationConfig"`
}

// GenerationConfig constrains the model output to JSON matching a schema.
type GenerationConfig struct {
	ResponseMIMEType string        `json:"responseMimeType"`
	ResponseSchema   *genai.Schema `json:"responseSchema"`
}

// Truncate returns the first n characters of s. It counts runes, so a
// multi-byte character is never split.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// BuildRequest returns the request body for categorizing snippet.
// The snippet is used as given; callers truncate it first.
func BuildRequest(tax docsearch.Taxonomy, snippet string) *Request {
	return &Request{
		Contents: []*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(snippet)}},
		}},
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: BuildSystemPrompt(tax)}},
		},
		GenerationConfig: &GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   BuildSchema(tax),
		},
	}
}

// BuildSystemPrompt returns the instruction listing every permitted value.
func BuildSystemPrompt(tax docsearch.Taxonomy) string {
	var sb strings.Builder
	sb.WriteString("You are an expert document categorizer. Analyze the provided document text and assign it a single 'topic', 'project' name, and 'team'.\n\n")
	sb.WriteString("You MUST select values ONLY from these predetermined lists:\n")
	fmt.Fprintf(&sb, "- Topic: %s. If none apply, use '%s'.\n", strings.Join(tax.Topics, ", "), tax.TopicFallback)
	fmt.Fprintf(&sb, "- Project: %s. If none apply, use '%s'.\n", strings.Join(tax.Projects, ", "), tax.ProjectFallback)
	fmt.Fprintf(&sb, "- Team: %s.\n\n", strings.Join(tax.Teams, ", "))
	sb.WriteString("Always respond with the requested JSON structure only.")
	return sb.String()
}

// BuildUserPrompt returns the user message carrying the document text.
func BuildUserPrompt(snippet string) string {
	return "Categorize the following document text. Be creative if the project or team is implied: \n\n--- DOCUMENT TEXT SNIPPET ---\n\n" + snippet
}

// BuildSchema returns the response schema: an object with three required
// string properties whose descriptions restate the permitted values.
func BuildSchema(tax docsearch.Taxonomy) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			fieldTopic: {
				Type:        genai.TypeString,
				Description: "The main subject. Must be one of: " + strings.Join(tax.Topics, ", "),
			},
			fieldProject: {
				Type:        genai.TypeString,
				Description: "The specific project. Must be one of: " + strings.Join(tax.Projects, ", "),
			},
			fieldTeam: {
				Type:        genai.TypeString,
				Description: "The primary team. Must be one of: " + strings.Join(tax.Teams, ", "),
			},
		},
		PropertyOrdering: []string{fieldTopic, fieldProject, fieldTeam},
		Required:         []string{fieldTopic, fieldProject, fieldTeam},
	}
}
