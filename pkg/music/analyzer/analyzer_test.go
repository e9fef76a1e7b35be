package analyzer

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"ai-musicchat-be/internal/entity"
	"ai-musicchat-be/pkg/llm"
)

type fakeProvider struct {
	response string
	err      error
	lastBody string
}

func (p *fakeProvider) Complete(ctx context.Context, systemPrompt, userText string, options ...llm.Option) (string, error) {
	p.lastBody = userText
	return p.response, p.err
}

func (p *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestAnalyzeFormatsTranscript(t *testing.T) {
	provider := &fakeProvider{response: "You lean towards mellow acoustic sets."}
	a := NewAnalyzer(provider, testLogger())

	first := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(5 * time.Minute)
	history := []*entity.ChatDetails{
		{Role: "human", Content: "I love slow piano pieces", CreatedAt: first},
		{Role: "human", Content: "something for rainy evenings", CreatedAt: second},
	}

	got, err := a.Analyze(context.Background(), history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "You lean towards mellow acoustic sets." {
		t.Errorf("analysis must be returned verbatim, got %q", got)
	}

	if !strings.HasPrefix(provider.lastBody, "**User's Chat History:**") {
		t.Errorf("header missing:\n%s", provider.lastBody)
	}
	wantLine := "\n2025-03-01T10:00:00Z - I love slow piano pieces"
	if !strings.Contains(provider.lastBody, wantLine) {
		t.Errorf("timestamped line missing, body:\n%s", provider.lastBody)
	}
	if strings.Index(provider.lastBody, "piano pieces") > strings.Index(provider.lastBody, "rainy evenings") {
		t.Error("transcript order must follow the given history")
	}
}

func TestAnalyzePropagatesCompletionFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("upstream down")}
	a := NewAnalyzer(provider, testLogger())

	if _, err := a.Analyze(context.Background(), nil); err == nil {
		t.Fatal("expected completion error to propagate")
	}
}
