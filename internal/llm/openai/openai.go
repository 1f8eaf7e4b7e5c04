package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/Yahelsm/stz-signal-tool/internal/config"
	"github.com/Yahelsm/stz-signal-tool/internal/llm"
	"github.com/Yahelsm/stz-signal-tool/internal/logger"
	"github.com/Yahelsm/stz-signal-tool/internal/types"
)

const endpoint = "https://api.openai.com/v1/chat/completions"

type Classifier struct {
	cfg    *config.Config
	client *http.Client
}

func NewClassifier(cfg *config.Config) *Classifier {
	return &Classifier{cfg: cfg, client: http.DefaultClient}
}

// Classify submits the snapshot as the user payload and expects the model to
// answer with a single JSON object holding the three signal lists. A
// non-JSON or malformed response is an error for this attempt; the caller's
// retry policy decides whether to try again.
func (c *Classifier) Classify(ctx context.Context, snap types.Snapshot) (types.Classification, error) {
	ctx, span := logger.StartSpan(ctx, "openai-classify")
	defer span.End()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return types.Classification{}, errors.New("OPENAI_API_KEY missing")
	}

	ub, _ := json.Marshal(snap)

	body := map[string]any{
		"model": c.cfg.LLM.Model,
		"messages": []map[string]string{
			{"role": "system", "content": c.cfg.LLM.System},
			{"role": "user", "content": string(ub)},
		},
		"temperature": c.cfg.LLM.Temperature,
		"max_tokens":  c.cfg.LLM.MaxTokens,
	}
	bb, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bb))
	if err != nil {
		return types.Classification{}, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return types.Classification{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return types.Classification{}, fmt.Errorf("openai http %d", resp.StatusCode)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return types.Classification{}, err
	}
	if len(r.Choices) == 0 {
		return types.Classification{}, errors.New("no choices")
	}

	return Parse(r.Choices[0].Message.Content)
}

// Parse turns raw model output into a capped Classification.
func Parse(content string) (types.Classification, error) {
	out, ok := llm.ExtractJSON(strings.TrimSpace(content))
	if !ok {
		return types.Classification{}, errors.New("no JSON object in model output")
	}

	var cls types.Classification
	if err := json.Unmarshal([]byte(out), &cls); err != nil {
		return types.Classification{}, fmt.Errorf("malformed classification: %w", err)
	}

	cls.Cap()
	return cls, nil
}
