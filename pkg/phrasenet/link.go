package phrasenet

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/CesarLuchesi/phrasenets/pkg/annotate"
)

// Dependency relations considered meaningful for syntactic linking.
var linkableRelations = map[string]struct{}{
	"nsubj": {},
	"obj":   {},
	"iobj":  {},
	"conj":  {},
	"acl":   {},
	"advcl": {},
}

// POS tags that never form nodes.
var skippedPOS = map[string]struct{}{
	"PUNCT": {},
	"SPACE": {},
	"SYM":   {},
}

// CompilePattern validates and compiles an orthographic linking pattern.
// The pattern needs at least two capture groups: the first is the left
// anchor, the last is the right anchor, and any groups between them are
// connective material ignored for node identity.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, &ConfigError{Param: "pattern", Reason: "required for orthographic linking"}
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &ConfigError{Param: "pattern", Reason: fmt.Sprintf("not a valid regular expression: %v", err)}
	}
	if re.NumSubexp() < 2 {
		return nil, &ConfigError{Param: "pattern", Reason: "needs two capture groups, one per linked word"}
	}
	return re, nil
}

// linkOrthographic scans the case-folded text with the compiled pattern and
// emits one observation per match, left anchor to right anchor. When lemma
// is non-nil the anchors are mapped through it before hidden-word filtering.
func linkOrthographic(text string, re *regexp.Regexp, hidden map[string]struct{}, lemma func(string) string) []Observation {
	observations := make([]Observation, 0)
	for _, match := range re.FindAllStringSubmatch(fold(text), -1) {
		left := match[1]
		right := match[len(match)-1]
		if lemma != nil {
			left = lemma(left)
			right = lemma(right)
		}
		if left == "" || right == "" {
			continue
		}
		if _, ok := hidden[left]; ok {
			continue
		}
		if _, ok := hidden[right]; ok {
			continue
		}
		observations = append(observations, Observation{Source: left, Target: right})
	}
	return observations
}

// linkSyntactic walks every dependency edge of the annotated sentences and
// emits head-to-dependent observations for the linkable relations. Tokens
// with a hidden lemma are skipped entirely, whether they appear as head or
// as dependent.
func linkSyntactic(sentences []annotate.Sentence, hidden map[string]struct{}) []Observation {
	observations := make([]Observation, 0)
	for _, sentence := range sentences {
		tokens := sentence.Tokens
		for _, token := range tokens {
			if _, ok := linkableRelations[token.Relation]; !ok {
				continue
			}
			if token.Head < 0 || token.Head >= len(tokens) {
				continue
			}
			head := tokens[token.Head]
			if !isContentToken(token) || !isContentToken(head) {
				continue
			}
			source := fold(head.Lemma)
			target := fold(token.Lemma)
			if source == "" || target == "" || source == target {
				continue
			}
			if _, ok := hidden[source]; ok {
				continue
			}
			if _, ok := hidden[target]; ok {
				continue
			}
			observations = append(observations, Observation{
				Source:   source,
				Target:   target,
				Relation: token.Relation,
			})
		}
	}
	return observations
}

func isContentToken(token annotate.Token) bool {
	_, skipped := skippedPOS[token.POS]
	return !skipped
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func foldSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		folded := fold(word)
		if folded == "" {
			continue
		}
		set[folded] = struct{}{}
	}
	return set
}
