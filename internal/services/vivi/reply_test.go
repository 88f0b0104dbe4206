package vivi

import (
	"testing"
)

func TestDecodeReply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		raw             string
		wantMessage     string
		wantSuggestions int
		wantActionItems int
		wantErr         bool
	}{
		{
			name:        "json string",
			raw:         `"Here is your post draft."`,
			wantMessage: "Here is your post draft.",
		},
		{
			name:            "structured object",
			raw:             `{"message":"Three ideas for you","suggestions":["a","b"],"actionItems":["do x"]}`,
			wantMessage:     "Three ideas for you",
			wantSuggestions: 2,
			wantActionItems: 1,
		},
		{
			name:        "structured object without extras",
			raw:         `{"message":"Just a message"}`,
			wantMessage: "Just a message",
		},
		{
			name:        "plain text",
			raw:         "Not JSON at all, just advice.",
			wantMessage: "Not JSON at all, just advice.",
		},
		{
			name:        "plain text with whitespace",
			raw:         "   padded advice   ",
			wantMessage: "padded advice",
		},
		{
			name:    "empty payload",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			raw:     "   ",
			wantErr: true,
		},
		{
			name:    "empty json string",
			raw:     `""`,
			wantErr: true,
		},
		{
			name:    "object missing message",
			raw:     `{"suggestions":["a"]}`,
			wantErr: true,
		},
		{
			name:    "malformed object",
			raw:     `{"message": unterminated`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := DecodeReply(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DecodeReply(%q) expected error, got %+v", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeReply(%q): %v", tt.raw, err)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMessage)
			}
			if len(got.Suggestions) != tt.wantSuggestions {
				t.Errorf("Suggestions len = %d, want %d", len(got.Suggestions), tt.wantSuggestions)
			}
			if len(got.ActionItems) != tt.wantActionItems {
				t.Errorf("ActionItems len = %d, want %d", len(got.ActionItems), tt.wantActionItems)
			}
		})
	}
}
