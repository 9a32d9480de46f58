package spacy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/CesarLuchesi/phrasenets/pkg/annotate"

	"golang.org/x/sync/semaphore"
)

// AnnotateClient implements annotate.Annotator against a spaCy REST
// annotation server. The server exposes a single POST /annotate endpoint
// that runs the requested pipeline model over the text.
type AnnotateClient struct {
	model string

	reqLock *semaphore.Weighted

	baseURL    *url.URL
	httpClient *http.Client
}

// NewAnnotateClientParams contains configuration for creating an AnnotateClient.
type NewAnnotateClientParams struct {
	BaseURL string
	ApiKey  string
	Model   string

	MaxConcurrentRequests int64
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so original request isn't modified
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewAnnotateClient creates a spaCy-backed annotator talking to the server
// at BaseURL, limited to MaxConcurrentRequests in-flight calls.
func NewAnnotateClient(params NewAnnotateClientParams) (*AnnotateClient, error) {
	if params.BaseURL == "" {
		return nil, fmt.Errorf("spacy: base URL is required")
	}
	u, err := url.Parse(params.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := http.DefaultClient
	if params.ApiKey != "" {
		httpClient = &http.Client{
			Transport: &headerTransport{
				headers: map[string]string{
					"Authorization": "Bearer " + params.ApiKey,
				},
				rt: http.DefaultTransport,
			},
		}
	}

	maxRequests := params.MaxConcurrentRequests
	if maxRequests <= 0 {
		maxRequests = 4
	}

	return &AnnotateClient{
		model:      params.Model,
		reqLock:    semaphore.NewWeighted(maxRequests),
		baseURL:    u,
		httpClient: httpClient,
	}, nil
}

// Name returns the engine identifier used in requests and error reports.
func (c *AnnotateClient) Name() string {
	return "spacy"
}

type annotateRequest struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}

type tokenPayload struct {
	Text  string `json:"text"`
	Lemma string `json:"lemma"`
	Pos   string `json:"pos"`
	Head  int    `json:"head"`
	Dep   string `json:"dep"`
}

type sentencePayload struct {
	Tokens []tokenPayload `json:"tokens"`
}

type annotateResponse struct {
	Sentences []sentencePayload `json:"sentences"`
}

// Annotate sends the text to the spaCy server and maps the response to the
// annotator contract. spaCy marks the sentence root with dep "ROOT" and a
// head index pointing at the token itself; both become annotate.RootHead.
func (c *AnnotateClient) Annotate(ctx context.Context, text string) ([]annotate.Sentence, error) {
	if err := c.reqLock.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.reqLock.Release(1)

	body, err := json.Marshal(annotateRequest{Text: text, Model: c.model})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.JoinPath("annotate").String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spacy server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("spacy server returned %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	var payload annotateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode spacy response: %w", err)
	}

	sentences := make([]annotate.Sentence, 0, len(payload.Sentences))
	for _, sentence := range payload.Sentences {
		tokens := make([]annotate.Token, 0, len(sentence.Tokens))
		for i, token := range sentence.Tokens {
			head := token.Head
			if strings.EqualFold(token.Dep, "root") || head == i {
				head = annotate.RootHead
			}
			tokens = append(tokens, annotate.Token{
				Surface:  token.Text,
				Lemma:    token.Lemma,
				POS:      token.Pos,
				Head:     head,
				Relation: strings.ToLower(token.Dep),
			})
		}
		sentences = append(sentences, annotate.Sentence{Tokens: tokens})
	}
	return sentences, nil
}
