package domain

import "strings"

// GeneratePart is a single text part of a content block.
type GeneratePart struct {
	Text string `json:"text"`
}

// GenerateContent is a role-tagged block of parts in a generateContent
// request or response.
type GenerateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []GeneratePart `json:"parts"`
}

// GenerationConfig carries the sampling parameters for a generation call.
type GenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

// GenerateRequest is the request body for the Gemini generateContent API.
type GenerateRequest struct {
	SystemInstruction *GenerateContent  `json:"systemInstruction,omitempty"`
	Contents          []GenerateContent `json:"contents"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// GenerateCandidate is a single candidate reply from the model.
type GenerateCandidate struct {
	Content      GenerateContent `json:"content"`
	FinishReason string          `json:"finishReason,omitempty"`
}

// GenerateResponse is the response body of the Gemini generateContent API.
type GenerateResponse struct {
	Candidates []GenerateCandidate `json:"candidates"`
}

// Text returns the concatenated text of the first candidate, trimmed.
// It returns "" when the response carries no usable text body.
func (r *GenerateResponse) Text() string {
	if r == nil || len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return strings.TrimSpace(b.String())
}
