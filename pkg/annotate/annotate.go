package annotate

import "context"

// RootHead marks a token as the root of its sentence.
const RootHead = -1

// Token is one annotated word of a sentence. Head is the in-sentence index
// of the governing token, or RootHead for the sentence root. Relation is the
// dependency relation between the token and its head.
type Token struct {
	Surface  string
	Lemma    string
	POS      string
	Head     int
	Relation string
}

// Sentence is an ordered sequence of annotated tokens.
type Sentence struct {
	Tokens []Token
}

// Annotator defines the annotation capability consumed by the linker.
// Implementations annotate raw text into sentences of tokens with lemmas,
// part-of-speech tags and dependency relations. The linker is written
// against this interface and never against a concrete engine.
type Annotator interface {
	Name() string
	Annotate(ctx context.Context, text string) ([]Sentence, error)
}
