package stanza

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/CesarLuchesi/phrasenets/pkg/annotate"

	"golang.org/x/sync/semaphore"
)

const depparseProcessors = "tokenize,mwt,pos,lemma,depparse"

// AnnotateClient implements annotate.Annotator against a Stanza annotation
// server. The server accepts a text plus a processor list and returns the
// parsed sentences as Stanza's word dictionaries.
type AnnotateClient struct {
	language string

	reqLock *semaphore.Weighted

	baseURL    *url.URL
	httpClient *http.Client
}

// NewAnnotateClientParams contains configuration for creating an AnnotateClient.
type NewAnnotateClientParams struct {
	BaseURL  string
	Language string

	MaxConcurrentRequests int64
}

// NewAnnotateClient creates a Stanza-backed annotator talking to the server
// at BaseURL, limited to MaxConcurrentRequests in-flight calls.
func NewAnnotateClient(params NewAnnotateClientParams) (*AnnotateClient, error) {
	if params.BaseURL == "" {
		return nil, fmt.Errorf("stanza: base URL is required")
	}
	u, err := url.Parse(params.BaseURL)
	if err != nil {
		return nil, err
	}

	language := params.Language
	if language == "" {
		language = "en"
	}

	maxRequests := params.MaxConcurrentRequests
	if maxRequests <= 0 {
		maxRequests = 4
	}

	return &AnnotateClient{
		language:   language,
		reqLock:    semaphore.NewWeighted(maxRequests),
		baseURL:    u,
		httpClient: http.DefaultClient,
	}, nil
}

// Name returns the engine identifier used in requests and error reports.
func (c *AnnotateClient) Name() string {
	return "stanza"
}

type annotateRequest struct {
	Text       string `json:"text"`
	Language   string `json:"lang"`
	Processors string `json:"processors"`
}

type wordPayload struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	Lemma  string `json:"lemma"`
	Upos   string `json:"upos"`
	Head   int    `json:"head"`
	Deprel string `json:"deprel"`
}

type sentencePayload struct {
	Words []wordPayload `json:"words"`
}

type annotateResponse struct {
	Sentences []sentencePayload `json:"sentences"`
}

// Annotate sends the text to the Stanza server and maps the response to the
// annotator contract. Stanza head indices are 1-based with 0 for the
// sentence root; they shift down by one, with 0 becoming annotate.RootHead.
func (c *AnnotateClient) Annotate(ctx context.Context, text string) ([]annotate.Sentence, error) {
	if err := c.reqLock.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.reqLock.Release(1)

	body, err := json.Marshal(annotateRequest{
		Text:       text,
		Language:   c.language,
		Processors: depparseProcessors,
	})
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
		return nil, fmt.Errorf("stanza server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("stanza server returned %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	var payload annotateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode stanza response: %w", err)
	}

	sentences := make([]annotate.Sentence, 0, len(payload.Sentences))
	for _, sentence := range payload.Sentences {
		tokens := make([]annotate.Token, 0, len(sentence.Words))
		for _, word := range sentence.Words {
			head := word.Head - 1
			if word.Head <= 0 {
				head = annotate.RootHead
			}
			tokens = append(tokens, annotate.Token{
				Surface:  word.Text,
				Lemma:    word.Lemma,
				POS:      word.Upos,
				Head:     head,
				Relation: word.Deprel,
			})
		}
		sentences = append(sentences, annotate.Sentence{Tokens: tokens})
	}
	return sentences, nil
}
