package vivi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Reply is the single internal shape every upstream response is normalized
// into before it reaches session state.
type Reply struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
	ActionItems []string `json:"action_items,omitempty"`
}

// structuredReply matches the upstream's structured response shape.
type structuredReply struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
	ActionItems []string `json:"actionItems"`
}

// DecodeReply normalizes an upstream payload at the boundary. The upstream
// answers with either a bare JSON string or a structured object; both decode
// into the same Reply. Payloads that are neither are treated as plain text.
func DecodeReply(raw string) (*Reply, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("empty reply payload")
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
			return nil, fmt.Errorf("failed to decode string reply: %w", err)
		}
		if strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("empty reply payload")
		}
		return &Reply{Message: s}, nil
	case '{':
		var obj structuredReply
		if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
			return nil, fmt.Errorf("failed to decode structured reply: %w", err)
		}
		if strings.TrimSpace(obj.Message) == "" {
			return nil, fmt.Errorf("structured reply missing message")
		}
		return &Reply{
			Message:     obj.Message,
			Suggestions: obj.Suggestions,
			ActionItems: obj.ActionItems,
		}, nil
	default:
		// Not JSON at all: treat the raw content as the message.
		return &Reply{Message: trimmed}, nil
	}
}
