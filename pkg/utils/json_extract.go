package utils

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

const malformedSnippetLen = 500

var codeFenceRe = regexp.MustCompile("(?i)```[a-z0-9_+-]*[ \t]*\r?\n?")

// ExtractJSON pulls the single JSON object out of an LLM reply that may carry
// markdown fences, commentary around the object, or trailing commas.
func ExtractJSON(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	content = codeFenceRe.ReplaceAllString(content, "")
	content = strings.TrimSpace(content)

	if first := strings.Index(content, "{"); first > 0 {
		content = content[first:]
	}

	if start, end := findObjectSpan(content); start != -1 && end != -1 {
		content = content[start : end+1]
	}

	if !json.Valid([]byte(content)) {
		content = removeTrailingCommas(content)
	}

	if !json.Valid([]byte(content)) {
		var decoded any
		err := json.Unmarshal([]byte(content), &decoded)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return "", &MalformedResponseError{Snippet: snippet(content), Err: err}
	}

	return content, nil
}

// DecodeJSON extracts the JSON object from raw and unmarshals it into v.
func DecodeJSON(raw string, v any) error {
	content, err := ExtractJSON(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(content), v); err != nil {
		return &MalformedResponseError{Snippet: snippet(content), Err: err}
	}
	return nil
}

// findObjectSpan returns the indexes of the first '{' and its matching '}'.
// Braces inside string literals do not count.
func findObjectSpan(s string) (int, int) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch ch {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			if start != -1 {
				inString = true
			}
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			if start == -1 {
				continue
			}
			depth--
			if depth == 0 {
				return start, i
			}
		}
	}

	return start, -1
}

// removeTrailingCommas drops a ',' that is followed only by whitespace and a
// closing '}' or ']'. String literals are copied untouched.
func removeTrailingCommas(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			sb.WriteByte(ch)
			continue
		}

		if ch == '"' {
			inString = true
		}
		if ch == ',' {
			j := i + 1
			for j < len(s) && strings.IndexByte(" \t\r\n", s[j]) >= 0 {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
		}
		sb.WriteByte(ch)
	}

	return sb.String()
}

func snippet(s string) string {
	if len(s) <= malformedSnippetLen {
		return s
	}
	return s[:malformedSnippetLen]
}
