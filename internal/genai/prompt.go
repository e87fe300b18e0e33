package genai

import (
	"fmt"
	"strings"

	"vidquiz-service/internal/domain"
)

const systemPrompt = "You are a quiz generator for educational videos. " +
	"You respond with JSON only, never with prose or markdown."

// buildPrompt renders the fixed instruction template plus the source
// material reference (transcript text or a direct media URL).
func buildPrompt(material domain.SourceMaterial) string {
	var sb strings.Builder

	sb.WriteString("Create a multiple choice quiz with 4 to 5 questions about the video below.\n\n")
	sb.WriteString("Return ONLY a JSON array in exactly this shape:\n")
	sb.WriteString(`[{"question": "...", "options": {"A": "...", "B": "...", "C": "...", "D": "..."}, "correctAnswer": "A"}]` + "\n\n")
	sb.WriteString("Requirements:\n")
	sb.WriteString("- Option keys must be drawn from A, B, C, D\n")
	sb.WriteString("- correctAnswer must be the key of one of the populated options\n")
	sb.WriteString("- Incorrect options should be plausible but clearly wrong\n")
	sb.WriteString("- Do not wrap the JSON in code fences or add any commentary\n\n")

	switch {
	case strings.TrimSpace(material.Transcript) != "":
		sb.WriteString("Video transcript:\n")
		sb.WriteString(material.Transcript)
		sb.WriteString("\n")
	case material.MediaURL != "":
		fmt.Fprintf(&sb, "The video is available at: %s\n", material.MediaURL)
	}

	return sb.String()
}
