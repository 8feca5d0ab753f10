package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tok := New(nil)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple words",
			text: "salami pancetta beef ribs",
			want: []string{"salami", "pancetta", "beef", "ribs"},
		},
		{
			name: "case folding",
			text: "Beef RIBS Salami",
			want: []string{"beef", "ribs", "salami"},
		},
		{
			name: "punctuation boundaries",
			text: "pork chop, shank; shoulder. t-bone!",
			want: []string{"pork", "chop", "shank", "shoulder", "t", "bone"},
		},
		{
			name: "consecutive separators",
			text: "ham   hock -- sausage",
			want: []string{"ham", "hock", "sausage"},
		},
		{
			name: "repeated tokens kept",
			text: "pea pea pea",
			want: []string{"pea", "pea", "pea"},
		},
		{
			name: "digits kept by default",
			text: "vitamin b12 added",
			want: []string{"vitamin", "b12", "added"},
		},
		{
			name: "unicode letters",
			text: "jalapeño crème fraîche",
			want: []string{"jalapeño", "crème", "fraîche"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: "  \t\n  ",
			want: nil,
		},
		{
			name: "punctuation only",
			text: "... --- !!!",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenizeIdempotent(t *testing.T) {
	tok := New(nil)
	text := "Sirloin porchetta drumstick, pastrami bresaola landjaeger!"

	first := tok.Tokenize(text)
	second := tok.Tokenize(text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("tokenizing the same string twice differed: %v vs %v", first, second)
	}
}

func TestTokenizeLengthBounds(t *testing.T) {
	tok := New(&Config{MinTokenLength: 3, MaxTokenLength: 6, KeepNumbers: true})

	got := tok.Tokenize("a ab abc abcdef abcdefg")
	want := []string{"abc", "abcdef"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize with length bounds = %v, want %v", got, want)
	}
}

func TestTokenizeDropNumbers(t *testing.T) {
	tok := New(&Config{MinTokenLength: 1, KeepNumbers: false})

	got := tok.Tokenize("room 101 floor 2b")
	want := []string{"room", "floor", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize without numbers = %v, want %v", got, want)
	}
}
