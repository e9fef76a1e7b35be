package traits

import (
	"context"
	"fmt"
	"log"

	"ai-musicchat-be/pkg/llm"
)

const maxAttempts = 3

// Extractor maps one free-text song description to a validated Traits
// profile using two independent completions per attempt: one for the
// 42-field JSON object, one for the genre vocabulary scan.
type Extractor struct {
	provider llm.Provider
	logger   *log.Logger
}

func NewExtractor(provider llm.Provider, logger *log.Logger) *Extractor {
	return &Extractor{
		provider: provider,
		logger:   logger,
	}
}

// Extract runs up to three attempts, immediately retrying on a failed
// completion, a schema mismatch, or an empty genre match. The first fully
// successful attempt wins; exhausting all attempts is an upstream-grade
// failure wrapped in ErrExhausted, never a partial result.
func (e *Extractor) Extract(ctx context.Context, query string) (*Traits, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		traitCompletion, err := e.provider.Complete(ctx, traitSystemPrompt, query,
			llm.WithTemperature(0.0))
		if err != nil {
			lastErr = fmt.Errorf("trait completion: %w", err)
			e.logger.Printf("[TRAITS] attempt %d/%d: %v", attempt, maxAttempts, lastErr)
			continue
		}

		genreCompletion, err := e.provider.Complete(ctx, genreSystemPrompt(), query,
			llm.WithTemperature(0.0))
		if err != nil {
			lastErr = fmt.Errorf("genre completion: %w", err)
			e.logger.Printf("[TRAITS] attempt %d/%d: %v", attempt, maxAttempts, lastErr)
			continue
		}

		fields, err := ParseTraitFields(traitCompletion)
		if err != nil {
			lastErr = err
			e.logger.Printf("[TRAITS] attempt %d/%d: verification failed: %v", attempt, maxAttempts, err)
			continue
		}

		genres := MatchGenres(genreCompletion)
		if len(genres) == 0 {
			lastErr = ErrNoGenres
			e.logger.Printf("[TRAITS] attempt %d/%d: no genres matched in %q", attempt, maxAttempts, truncate(genreCompletion, 80))
			continue
		}

		return &Traits{
			Fields: fields,
			Genres: genres,
			Limit:  DefaultLimit,
			Market: DefaultMarket,
		}, nil
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrExhausted, maxAttempts, lastErr)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
