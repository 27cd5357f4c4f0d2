package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

type EvaluatorConfig struct {
	Provider string // "gemini" or "openrouter"
	Timeout  time.Duration
}

var (
	evaluatorConfig *EvaluatorConfig
	evaluatorOnce   sync.Once
)

func LoadEvaluatorConfig() *EvaluatorConfig {
	evaluatorOnce.Do(func() {
		provider := os.Getenv("EVALUATOR_PROVIDER")
		if provider == "" {
			provider = "gemini"
		}
		timeout := 90 * time.Second
		if raw := os.Getenv("EVALUATOR_TIMEOUT_SECONDS"); raw != "" {
			if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
				timeout = time.Duration(secs) * time.Second
			}
		}
		evaluatorConfig = &EvaluatorConfig{
			Provider: provider,
			Timeout:  timeout,
		}
	})
	return evaluatorConfig
}
