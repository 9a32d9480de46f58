package phrasenet

import (
	"errors"
	"testing"

	"github.com/CesarLuchesi/phrasenets/pkg/annotate"
)

func TestCompilePattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{
			name:    "two capture groups",
			pattern: `(\w+)\s+(\w+)`,
			wantErr: false,
		},
		{
			name:    "connective group in the middle",
			pattern: `(\w+)\s+(and)\s+(\w+)`,
			wantErr: false,
		},
		{
			name:    "empty pattern",
			pattern: "",
			wantErr: true,
		},
		{
			name:    "blank pattern",
			pattern: "   ",
			wantErr: true,
		},
		{
			name:    "invalid regular expression",
			pattern: `(\w+`,
			wantErr: true,
		},
		{
			name:    "single capture group",
			pattern: `(\w+) and \w+`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompilePattern(tt.pattern)
			if tt.wantErr {
				var configErr *ConfigError
				if !errors.As(err, &configErr) {
					t.Fatalf("expected a ConfigError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLinkOrthographic(t *testing.T) {
	re, err := CompilePattern(`(\w+)\s+(and)\s+(\w+)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := "The brown dog was quick and lazy. A quick and fast fox jumped over the fence."
	got := linkOrthographic(text, re, nil, nil)

	want := []Observation{
		{Source: "quick", Target: "lazy"},
		{Source: "quick", Target: "fast"},
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected observation count: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected observation at %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLinkOrthographicFoldsCase(t *testing.T) {
	re, err := CompilePattern(`(\w+)\s+(and)\s+(\w+)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := linkOrthographic("Salt AND Pepper", re, nil, nil)
	if len(got) != 1 {
		t.Fatalf("unexpected observation count: got %d, want 1", len(got))
	}
	if got[0].Source != "salt" || got[0].Target != "pepper" {
		t.Fatalf("unexpected observation: %+v", got[0])
	}
}

func TestLinkOrthographicHiddenWords(t *testing.T) {
	re, err := CompilePattern(`(\w+)\s+(and)\s+(\w+)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hidden := foldSet([]string{"Lazy"})
	got := linkOrthographic("quick and lazy, quick and fast", re, hidden, nil)
	if len(got) != 1 {
		t.Fatalf("unexpected observation count: got %d, want 1", len(got))
	}
	if got[0].Source != "quick" || got[0].Target != "fast" {
		t.Fatalf("unexpected observation: %+v", got[0])
	}
}

func TestLinkOrthographicLemmaMapping(t *testing.T) {
	re, err := CompilePattern(`(\w+)\s+(and)\s+(\w+)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lemma := func(surface string) string {
		if surface == "dogs" {
			return "dog"
		}
		return surface
	}
	got := linkOrthographic("dogs and cats", re, nil, lemma)
	if len(got) != 1 {
		t.Fatalf("unexpected observation count: got %d, want 1", len(got))
	}
	if got[0].Source != "dog" || got[0].Target != "cats" {
		t.Fatalf("unexpected observation: %+v", got[0])
	}
}

func TestLinkSyntactic(t *testing.T) {
	sentences := []annotate.Sentence{
		{
			Tokens: []annotate.Token{
				{Surface: "The", Lemma: "the", POS: "DET", Head: 2, Relation: "det"},
				{Surface: "dog", Lemma: "dog", POS: "NOUN", Head: 2, Relation: "nsubj"},
				{Surface: "chased", Lemma: "chase", POS: "VERB", Head: annotate.RootHead, Relation: "root"},
				{Surface: "cats", Lemma: "cat", POS: "NOUN", Head: 2, Relation: "obj"},
				{Surface: ".", Lemma: ".", POS: "PUNCT", Head: 2, Relation: "punct"},
			},
		},
	}

	got := linkSyntactic(sentences, nil)
	want := []Observation{
		{Source: "chase", Target: "dog", Relation: "nsubj"},
		{Source: "chase", Target: "cat", Relation: "obj"},
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected observation count: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected observation at %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLinkSyntacticSkipsNonContentAndHidden(t *testing.T) {
	sentences := []annotate.Sentence{
		{
			Tokens: []annotate.Token{
				{Surface: "dog", Lemma: "dog", POS: "NOUN", Head: 1, Relation: "nsubj"},
				{Surface: "ran", Lemma: "run", POS: "VERB", Head: annotate.RootHead, Relation: "root"},
				{Surface: "#", Lemma: "#", POS: "SYM", Head: 1, Relation: "obj"},
				{Surface: "home", Lemma: "home", POS: "NOUN", Head: 1, Relation: "obj"},
			},
		},
	}

	got := linkSyntactic(sentences, foldSet([]string{"home"}))
	want := []Observation{
		{Source: "run", Target: "dog", Relation: "nsubj"},
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected observations: got %+v, want %+v", got, want)
	}
	if got[0] != want[0] {
		t.Fatalf("unexpected observation: got %+v, want %+v", got[0], want[0])
	}
}

func TestLinkSyntacticIgnoresUnlinkableRelations(t *testing.T) {
	sentences := []annotate.Sentence{
		{
			Tokens: []annotate.Token{
				{Surface: "big", Lemma: "big", POS: "ADJ", Head: 1, Relation: "amod"},
				{Surface: "dog", Lemma: "dog", POS: "NOUN", Head: annotate.RootHead, Relation: "root"},
			},
		},
	}

	if got := linkSyntactic(sentences, nil); len(got) != 0 {
		t.Fatalf("expected no observations, got %+v", got)
	}
}
