package llm

import (
	_ "embed"
	"fmt"
	"strings"
)

var (
	//go:embed prompts/analyze_system.txt
	analyzeSystemPrompt string
	//go:embed prompts/analyze_user.txt
	analyzeUserPrompt string
	//go:embed prompts/qa_system.txt
	qaSystemPrompt string
	//go:embed prompts/summary_system.txt
	summarySystemPrompt string
)

// AnalyzeMessages builds the message sequence demanding a JSON-only
// structured analysis of the document text.
func AnalyzeMessages(text string) []Message {
	return []Message{
		{Role: RoleSystem, Content: strings.TrimSpace(analyzeSystemPrompt)},
		{Role: RoleUser, Content: fmt.Sprintf(analyzeUserPrompt, Truncate(text, AnalyzeTextLimit))},
	}
}

// QAMessages builds the message sequence for answering a question about the
// document: system prompt, document context, prior turns replayed in order as
// alternating user/assistant messages, then the new question.
func QAMessages(text, question string, history []Turn) []Message {
	messages := make([]Message, 0, len(history)*2+3)
	messages = append(messages,
		Message{Role: RoleSystem, Content: strings.TrimSpace(qaSystemPrompt)},
		Message{Role: RoleUser, Content: "Document Content:\n" + Truncate(text, QATextLimit)},
	)
	for _, turn := range history {
		messages = append(messages,
			Message{Role: RoleUser, Content: turn.Question},
			Message{Role: RoleAssistant, Content: turn.Answer},
		)
	}
	return append(messages, Message{Role: RoleUser, Content: question})
}

// SummaryMessages builds the message sequence for a summary constrained to
// the given focus instruction.
func SummaryMessages(text, focus string) []Message {
	return []Message{
		{Role: RoleSystem, Content: strings.TrimSpace(summarySystemPrompt)},
		{Role: RoleUser, Content: fmt.Sprintf("Create a detailed summary focusing specifically on: %s\n\nDocument:\n%s", focus, Truncate(text, SummaryTextLimit))},
	}
}

// StripJSONFence removes a surrounding markdown code fence from a model
// response, if present.
func StripJSONFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
