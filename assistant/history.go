package assistant

// Turn is one prior conversation turn. Role is "user" or "model".
type Turn struct {
	Role    string
	Content string
}

// CleanHistory prepares a turn window for the model. Gemini requires strictly
// alternating user/model roles starting with a user turn, so turns with other
// roles are dropped, consecutive same-role turns keep only the first, and a
// leading model turn is trimmed. The new user text is appended as the final
// turn; if everything else is discarded the result is just that turn.
func CleanHistory(turns []Turn, userText string) []Turn {
	full := make([]Turn, 0, len(turns)+1)
	full = append(full, turns...)
	full = append(full, Turn{Role: "user", Content: userText})

	cleaned := make([]Turn, 0, len(full))
	lastRole := ""
	for _, t := range full {
		if t.Role != "user" && t.Role != "model" {
			continue
		}
		if t.Role == lastRole {
			continue
		}
		cleaned = append(cleaned, t)
		lastRole = t.Role
	}

	if len(cleaned) > 0 && cleaned[0].Role != "user" {
		cleaned = cleaned[1:]
	}
	if len(cleaned) == 0 {
		cleaned = append(cleaned, Turn{Role: "user", Content: userText})
	}
	return cleaned
}
