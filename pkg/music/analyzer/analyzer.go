package analyzer

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"ai-musicchat-be/internal/entity"
	"ai-musicchat-be/pkg/llm"
)

// Analyzer turns an ordered chat transcript into a free-text preference
// summary. One completion, no retry; the output is prose and is returned
// verbatim without structural validation.
type Analyzer struct {
	provider llm.Provider
	logger   *log.Logger
}

func NewAnalyzer(provider llm.Provider, logger *log.Logger) *Analyzer {
	return &Analyzer{
		provider: provider,
		logger:   logger,
	}
}

// Analyze concatenates the transcript as timestamped lines and asks the
// Music Preference Analyzer persona for a summary.
func (a *Analyzer) Analyze(ctx context.Context, history []*entity.ChatDetails) (string, error) {
	var b strings.Builder
	b.WriteString("**User's Chat History:**")
	for _, turn := range history {
		b.WriteString("\n")
		b.WriteString(turn.CreatedAt.Format(time.RFC3339))
		b.WriteString(" - ")
		b.WriteString(turn.Content)
	}

	completion, err := a.provider.Complete(ctx, analysisSystemPrompt, b.String())
	if err != nil {
		return "", fmt.Errorf("preference analysis completion: %w", err)
	}

	a.logger.Printf("[ANALYZER] summarized %d turns", len(history))
	return completion, nil
}
