package chatrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"ai-musicchat-be/internal/entity"
	"ai-musicchat-be/pkg/llm"
)

// Decision is the router's verdict for one turn. Content is the reply to
// show the user; NeedRecommendation tells the caller to run trait
// extraction on the same query. The prompt obliges the model to set the
// flag whenever its own content promises recommendations, but that rule
// lives on the model side: the decision is passed through field for field,
// never semantically corrected here.
type Decision struct {
	Content            string `json:"content"`
	NeedRecommendation bool   `json:"need_recommendation"`
}

// Router decides, per turn, whether to keep chatting or hand off to the
// extraction pipeline. One JSON-constrained completion, no retry.
type Router struct {
	provider llm.Provider
	logger   *log.Logger
}

func NewRouter(provider llm.Provider, logger *log.Logger) *Router {
	return &Router{
		provider: provider,
		logger:   logger,
	}
}

// RouteTurn formats the transcript plus the new query and parses the
// model's JSON decision. Malformed JSON or a failed completion surfaces as
// an error; the caller owns any retry policy.
func (r *Router) RouteTurn(ctx context.Context, query string, history []*entity.ChatDetails) (*Decision, error) {
	body := buildTurnPrompt(query, history)

	completion, err := r.provider.Complete(ctx, routerSystemPrompt, body, llm.WithJSONOutput())
	if err != nil {
		return nil, fmt.Errorf("router completion: %w", err)
	}

	var decision Decision
	if err := json.Unmarshal([]byte(completion), &decision); err != nil {
		return nil, fmt.Errorf("router decision is not a JSON object: %w", err)
	}

	r.logger.Printf("[ROUTER] need_recommendation=%v", decision.NeedRecommendation)
	return &decision, nil
}

func buildTurnPrompt(query string, history []*entity.ChatDetails) string {
	var b strings.Builder

	b.WriteString("# Conversation so far:\n")
	for _, turn := range history {
		b.WriteString(turn.Role)
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n")
	}

	b.WriteString("\n# New message from the user:\n")
	b.WriteString(query)

	return b.String()
}
