package llm

import "strings"

// ExtractJSON pulls the JSON object out of a model reply. Replies routinely
// wrap the payload in markdown code fences or surround it with prose, so the
// fences are stripped first and then the first balanced object is taken.
// Returns "" when no object can be located.
func ExtractJSON(text string) string {
	if idx := strings.Index(text, "```json"); idx != -1 {
		rest := text[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end != -1 {
			text = rest[:end]
		} else {
			text = rest
		}
	} else if idx := strings.Index(text, "```"); idx != -1 {
		rest := text[idx+len("```"):]
		if end := strings.Index(rest, "```"); end != -1 {
			text = rest[:end]
		} else {
			text = rest
		}
	}

	return firstBalancedObject(text)
}

// firstBalancedObject scans for the first brace-balanced JSON object,
// ignoring braces inside string literals.
func firstBalancedObject(text string) string {
	start := strings.Index(text, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	return ""
}
