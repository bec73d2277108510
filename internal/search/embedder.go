package search

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	chromem "github.com/philippgille/chromem-go"
)

// Embedder defines the interface for generating text embeddings.
type Embedder interface {
	// Embed generates embeddings for one or more texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the number of dimensions in the embedding vectors.
	Dimensions() int

	// Name returns the name/identifier of the embedding model.
	Name() string
}

// ToChromemFunc converts an Embedder into a chromem.EmbeddingFunc.
// chromem-go expects a function that embeds a single text at a time.
func ToChromemFunc(e Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		results, err := e.Embed(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			return nil, nil
		}
		return results[0], nil
	}
}

// HashEmbedder is a local bag-of-words embedder. Each token is hashed into a
// bucket; the last dimension is a constant bias so empty text still yields a
// unit vector. It needs no network access or model files.
type HashEmbedder struct {
	dims int
}

// NewHashEmbedder creates an embedder with dims buckets plus the bias dimension.
func NewHashEmbedder(dims int) *HashEmbedder {
	if dims <= 0 {
		dims = 512
	}
	return &HashEmbedder{dims: dims}
}

func (h *HashEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = h.vector(text)
	}
	return out, nil
}

func (h *HashEmbedder) Dimensions() int { return h.dims + 1 }
func (h *HashEmbedder) Name() string    { return "hash-bow" }

func (h *HashEmbedder) vector(text string) []float32 {
	vec := make([]float32, h.dims+1)
	vec[h.dims] = 0.5
	for _, tok := range Tokenize(text) {
		f := fnv.New32a()
		f.Write([]byte(tok))
		vec[int(f.Sum32()%uint32(h.dims))] += 1
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}

var stopWords = map[string]bool{
	"the": true, "and": true, "are": true, "you": true, "your": true,
	"with": true, "for": true, "not": true, "but": true, "has": true,
	"have": true, "from": true, "this": true, "that": true, "into": true,
	"its": true, "too": true, "all": true, "can": true, "out": true,
	"was": true, "there": true, "than": true, "then": true, "what": true,
	"like": true, "looks": true, "look": true, "see": true, "mine": true,
}

// Tokenize lowercases text, splits on anything that is not a letter or digit,
// drops short and stop words and strips a plural "s".
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var out []string
	for _, f := range fields {
		if len(f) < 3 || stopWords[f] {
			continue
		}
		if len(f) > 3 && strings.HasSuffix(f, "s") && !strings.HasSuffix(f, "ss") {
			f = strings.TrimSuffix(f, "s")
		}
		out = append(out, f)
	}
	return out
}
