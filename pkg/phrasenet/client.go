package phrasenet

import (
	"context"
	"runtime"
	"strings"

	"github.com/CesarLuchesi/phrasenets/pkg/annotate"
	"github.com/CesarLuchesi/phrasenets/pkg/logger"

	"github.com/panjf2000/ants/v2"
)

// Client drives the analysis pipeline: validate, link, aggregate, filter,
// compress, serialize. Annotation calls run on a bounded worker pool shared
// across requests; everything else is computed synchronously per request
// with no shared state.
//
// A Client should be created with NewClient and released with Close.
type Client struct {
	pool *ants.Pool
}

// NewClientParams defines the configuration for creating a Client.
//
// PoolSize bounds how many annotation calls may be in flight at once across
// all requests. It defaults to the number of CPUs.
type NewClientParams struct {
	PoolSize int
}

// NewClient creates a Client with a bounded annotation worker pool.
func NewClient(params NewClientParams) (*Client, error) {
	size := params.PoolSize
	if size <= 0 {
		size = runtime.NumCPU()
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}
	return &Client{pool: pool}, nil
}

// Close releases the annotation worker pool.
func (c *Client) Close() {
	c.pool.Release()
}

// AnalyzeParams are the validated inputs of one analysis request.
type AnalyzeParams struct {
	Text        string
	Linking     LinkingType
	Pattern     string
	Annotator   annotate.Annotator
	MaxNodes    int
	HiddenWords []string
	Lemmatize   bool
}

// Analyze builds a phrase net from the given text. Configuration and input
// problems are rejected before any linking work starts; annotation failures
// surface as a ServiceError without retries.
func (c *Client) Analyze(ctx context.Context, params AnalyzeParams) (*Result, error) {
	if strings.TrimSpace(params.Text) == "" {
		return nil, &InputError{Reason: "text is empty"}
	}
	if params.MaxNodes <= 0 {
		return nil, &ConfigError{Param: "max_nodes", Reason: "must be greater than zero"}
	}
	hidden := foldSet(params.HiddenWords)

	var observations []Observation
	switch params.Linking {
	case LinkingOrthographic:
		re, err := CompilePattern(params.Pattern)
		if err != nil {
			return nil, err
		}
		var lemma func(string) string
		if params.Lemmatize {
			if params.Annotator == nil {
				return nil, &ConfigError{Param: "nlp_tool", Reason: "required when lemmatization is requested"}
			}
			lemma, err = c.lemmaLookup(ctx, params.Annotator, params.Text)
			if err != nil {
				return nil, err
			}
		}
		observations = linkOrthographic(params.Text, re, hidden, lemma)
	case LinkingSyntactic:
		if params.Annotator == nil {
			return nil, &ConfigError{Param: "nlp_tool", Reason: "required for syntactic linking"}
		}
		sentences, err := c.annotate(ctx, params.Annotator, params.Text)
		if err != nil {
			return nil, err
		}
		observations = linkSyntactic(sentences, hidden)
	default:
		return nil, &ConfigError{Param: "linking_type", Reason: "must be orthographic or syntactic"}
	}

	logger.Debug("[Analyze] Linking completed", "linking_type", string(params.Linking), "observations", len(observations))

	graph := Aggregate(observations)
	filtered, err := FilterTop(graph, params.MaxNodes)
	if err != nil {
		return nil, err
	}
	compressed := Compress(filtered)

	logger.Debug("[Analyze] Graph built", "nodes", len(compressed.Nodes), "edges", len(compressed.Edges))

	return Serialize(compressed), nil
}

// annotate runs the engine call on the worker pool and waits for it. Submit
// blocks while every worker is busy, which bounds concurrent annotation
// across requests. There is no cancellation of an in-flight engine call;
// the caller stops waiting when its context ends.
func (c *Client) annotate(ctx context.Context, annotator annotate.Annotator, text string) ([]annotate.Sentence, error) {
	type annotationResult struct {
		sentences []annotate.Sentence
		err       error
	}

	done := make(chan annotationResult, 1)
	if err := c.pool.Submit(func() {
		sentences, err := annotator.Annotate(ctx, text)
		done <- annotationResult{sentences: sentences, err: err}
	}); err != nil {
		return nil, &ServiceError{Service: annotator.Name(), Err: err}
	}

	select {
	case res := <-done:
		if res.err != nil {
			return nil, &ServiceError{Service: annotator.Name(), Err: res.err}
		}
		return res.sentences, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// lemmaLookup annotates the full text once and returns a surface-to-lemma
// mapping for the orthographic linker. Unknown surfaces map to themselves.
func (c *Client) lemmaLookup(ctx context.Context, annotator annotate.Annotator, text string) (func(string) string, error) {
	sentences, err := c.annotate(ctx, annotator, text)
	if err != nil {
		return nil, err
	}

	lemmas := make(map[string]string)
	for _, sentence := range sentences {
		for _, token := range sentence.Tokens {
			surface := fold(token.Surface)
			lemma := fold(token.Lemma)
			if surface == "" || lemma == "" {
				continue
			}
			if _, ok := lemmas[surface]; !ok {
				lemmas[surface] = lemma
			}
		}
	}
	return func(word string) string {
		if lemma, ok := lemmas[word]; ok {
			return lemma
		}
		return word
	}, nil
}
