package textclean

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"The battery lasts 12 hours!", []string{"battery", "lasts", "hours"}},
		{"I don't like it.", []string{"like"}},
		{"", []string{}},
		{"Café au lait", []string{"café", "au", "lait"}},
	}

	for _, tt := range tests {
		got := Tokens(tt.in)
		if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("Tokens(%q) (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestSentences(t *testing.T) {
	got := Sentences("The battery is great. The camera is awful!\nShipping was slow")
	want := []string{"The battery is great.", "The camera is awful!", "Shipping was slow"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sentences (-want +got):\n%s", diff)
	}

	if got := Sentences("   "); len(got) != 0 {
		t.Errorf("blank input should give no sentences, got %v", got)
	}
}

func TestWordsKeepsStopwords(t *testing.T) {
	want := []string{"the", "price", "isn't", "right"}
	if diff := cmp.Diff(want, Words("The price isn't right.")); diff != "" {
		t.Errorf("Words (-want +got):\n%s", diff)
	}
}

func TestPlain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"I love this!", "I love this!"},
		{"**Great** [phone](https://example.com/p)", "Great phone"},
		{"# Title\n\nBody text", "Title Body text"},
		{"see https://example.com now", "see now"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Plain(tt.in); got != tt.want {
			t.Errorf("Plain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
