package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fadilmartias/ats-interviewer/internal/config"
	"github.com/fadilmartias/ats-interviewer/internal/model"
	"github.com/fadilmartias/ats-interviewer/internal/usecase"
	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// OpenRouterEvaluator is the drop-in alternative to the Gemini evaluator,
// talking to OpenRouter's chat completions API over HTTP.
type OpenRouterEvaluator struct {
	client *resty.Client
	model  string
	log    *zap.Logger
}

func NewOpenRouterEvaluator(log *zap.Logger) *OpenRouterEvaluator {
	client := resty.New().
		SetBaseURL("https://openrouter.ai/api/v1").
		SetAuthToken(config.LoadOpenRouterConfig().APIKey).
		SetTimeout(60 * time.Second)
	return &OpenRouterEvaluator{
		client: client,
		model:  "deepseek/deepseek-chat-v3.1:free",
		log:    log,
	}
}

func (e *OpenRouterEvaluator) Evaluate(ctx context.Context, in usecase.EvaluationInput) (float64, *model.Analysis, error) {
	prompt := buildEvaluationPrompt(in)

	body := map[string]any{
		"model": e.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.1,
	}

	var content string
	backoff := retry.WithMaxRetries(3, retry.NewExponential(time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := e.client.R().
			SetContext(ctx).
			SetBody(body).
			Post("/chat/completions")
		if err != nil {
			return retry.RetryableError(err)
		}
		status := resp.StatusCode()
		if status == 429 || status >= 500 {
			e.log.Warn("openrouter transient failure", zap.Int("status", status))
			return retry.RetryableError(fmt.Errorf("openrouter status %d", status))
		}
		if status != 200 {
			return fmt.Errorf("openrouter status %d: %s", status, resp.String())
		}
		content = gjson.GetBytes(resp.Body(), "choices.0.message.content").String()
		if content == "" {
			return fmt.Errorf("openrouter returned empty completion")
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return parseEvaluation(content)
}
