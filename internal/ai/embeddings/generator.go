package embeddings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Dimensions of the vectors requested from the API; the jobs.embedding column matches
const Dimensions = 1536

// maxInputRunes keeps long job descriptions under the model's token limit
const maxInputRunes = 8000

var ErrEmptyText = errors.New("embeddings: text is empty")

// EmbeddingsGenerator turns job and profile text into vectors for semantic matching
type EmbeddingsGenerator struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewEmbeddingsGenerator creates a new embeddings generator
func NewEmbeddingsGenerator(apiKey string, opts ...option.RequestOption) *EmbeddingsGenerator {
	client := openai.NewClient(
		append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...,
	)

	return &EmbeddingsGenerator{
		client: &client,
		model:  openai.EmbeddingModelTextEmbedding3Small,
	}
}

// GenerateEmbedding returns the vector of text. The text is trimmed and cut
// to maxInputRunes before it is sent.
func (g *EmbeddingsGenerator) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	text = prepare(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	resp, err := g.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
		Model:      g.model,
		Dimensions: openai.Int(Dimensions),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding data returned")
	}

	vector := resp.Data[0].Embedding
	if len(vector) != Dimensions {
		return nil, fmt.Errorf("embedding has %d dimensions, want %d", len(vector), Dimensions)
	}

	out := make([]float32, len(vector))
	for i, v := range vector {
		out[i] = float32(v)
	}
	return out, nil
}

func prepare(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= maxInputRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxInputRunes])
}
