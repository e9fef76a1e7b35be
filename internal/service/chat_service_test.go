package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"ai-musicchat-be/internal/constant"
	"ai-musicchat-be/internal/dto"
	"ai-musicchat-be/internal/entity"
	"ai-musicchat-be/internal/repository/contract"
	"ai-musicchat-be/internal/repository/specification"
	"ai-musicchat-be/internal/repository/unitofwork"
	"ai-musicchat-be/pkg/events"
	"ai-musicchat-be/pkg/llm"
	"ai-musicchat-be/pkg/music/analyzer"
	"ai-musicchat-be/pkg/music/chatrouter"
	"ai-musicchat-be/pkg/music/traits"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory repository fakes. Specifications are interpreted by type so
// the service's query intent stays observable without a database.

type fakeChatInfoRepo struct {
	rows []*entity.ChatInfo
}

func infoMatches(info *entity.ChatInfo, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByChatID:
			if info.ChatId != sp.ChatID {
				return false
			}
		case specification.ByUserID:
			if info.UserId != sp.UserID {
				return false
			}
		case specification.ByAgentName:
			if info.AgentName != sp.AgentName {
				return false
			}
		default:
			panic("unsupported specification in fakeChatInfoRepo")
		}
	}
	return true
}

func (r *fakeChatInfoRepo) Create(ctx context.Context, info *entity.ChatInfo) error {
	clone := *info
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *fakeChatInfoRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatInfo, error) {
	for _, row := range r.rows {
		if infoMatches(row, specs) {
			clone := *row
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeChatInfoRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatInfo, error) {
	var out []*entity.ChatInfo
	for _, row := range r.rows {
		if infoMatches(row, specs) {
			clone := *row
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeChatInfoRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, _ := r.FindAll(ctx, specs...)
	return int64(len(rows)), nil
}

type fakeChatDetailsRepo struct {
	rows []*entity.ChatDetails
}

func detailsMatches(d *entity.ChatDetails, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByChatID:
			if d.ChatId != sp.ChatID {
				return false
			}
		case specification.ByChatIDs:
			found := false
			for _, id := range sp.ChatIDs {
				if d.ChatId == id {
					found = true
				}
			}
			if !found {
				return false
			}
		case specification.ByMessageID:
			if d.MessageId != sp.MessageID {
				return false
			}
		case specification.ByRole:
			if d.Role != sp.Role {
				return false
			}
		case specification.OrderBy:
			// ordering is not a filter
		default:
			panic("unsupported specification in fakeChatDetailsRepo")
		}
	}
	return true
}

func (r *fakeChatDetailsRepo) Create(ctx context.Context, d *entity.ChatDetails) error {
	clone := *d
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *fakeChatDetailsRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatDetails, error) {
	for _, row := range r.rows {
		if detailsMatches(row, specs) {
			clone := *row
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeChatDetailsRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatDetails, error) {
	var out []*entity.ChatDetails
	for _, row := range r.rows {
		if detailsMatches(row, specs) {
			clone := *row
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeChatDetailsRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, _ := r.FindAll(ctx, specs...)
	return int64(len(rows)), nil
}

type fakeUnitOfWork struct {
	infos   *fakeChatInfoRepo
	details *fakeChatDetailsRepo
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }
func (u *fakeUnitOfWork) ChatInfoRepository() contract.ChatInfoRepository {
	return u.infos
}
func (u *fakeUnitOfWork) ChatDetailsRepository() contract.ChatDetailsRepository {
	return u.details
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakePublisher struct {
	published []events.Event
}

func (p *fakePublisher) Publish(ctx context.Context, evt events.Event) error {
	p.published = append(p.published, evt)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// scriptedProvider replays completions in call order and records the user
// text of each call.
type scriptedProvider struct {
	responses []string
	errs      []error
	userTexts []string
}

func (p *scriptedProvider) Complete(ctx context.Context, systemPrompt, userText string, options ...llm.Option) (string, error) {
	i := len(p.userTexts)
	p.userTexts = append(p.userTexts, userText)
	if i < len(p.errs) && p.errs[i] != nil {
		return "", p.errs[i]
	}
	if i >= len(p.responses) {
		return "", errors.New("unexpected completion call")
	}
	return p.responses[i], nil
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

func validTraitJSON(t *testing.T) string {
	t.Helper()
	obj := make(map[string]interface{}, len(traits.TraitKeys))
	for _, key := range traits.TraitKeys {
		obj[key] = nil
	}
	obj["target_valence"] = 0.9
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	return string(data)
}

func newTestService(provider llm.Provider) (IChatService, *fakeUnitOfWork, *fakePublisher) {
	uow := &fakeUnitOfWork{
		infos:   &fakeChatInfoRepo{},
		details: &fakeChatDetailsRepo{},
	}
	pub := &fakePublisher{}
	discard := log.New(io.Discard, "", 0)

	svc := NewChatService(
		&fakeFactory{uow: uow},
		chatrouter.NewRouter(provider, discard),
		analyzer.NewAnalyzer(provider, discard),
		traits.NewExtractor(provider, discard),
		pub,
		nopLogger{},
	)
	return svc, uow, pub
}

func TestRecordTurnCreatesInfoOnceAndAppendsTurns(t *testing.T) {
	svc, uow, pub := newTestService(&scriptedProvider{})
	ctx := context.Background()

	first, err := svc.RecordTurn(ctx, &dto.UpdateChatRequest{
		Role:      constant.ChatRoleHuman,
		Content:   "hello",
		UserId:    "U",
		UserName:  "Uma",
		AgentId:   "A1",
		AgentName: constant.AgentNameChat,
	})
	require.NoError(t, err)

	second, err := svc.RecordTurn(ctx, &dto.UpdateChatRequest{
		ChatId:    first.ChatId.String(),
		Role:      constant.ChatRoleAgent,
		Content:   "hi, what can I play for you?",
		UserId:    "U",
		AgentName: constant.AgentNameChat,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ChatId, second.ChatId)
	assert.Len(t, uow.infos.rows, 1)
	assert.Len(t, uow.details.rows, 2)
	for _, d := range uow.details.rows {
		assert.Equal(t, first.ChatId, d.ChatId)
	}
	assert.Len(t, pub.published, 2)
	assert.Equal(t, events.TypeChatTurnRecorded, pub.published[0].EventType())
}

func TestRecordTurnStartsFreshChatForUnknownId(t *testing.T) {
	svc, uow, _ := newTestService(&scriptedProvider{})

	stale := uuid.New()
	res, err := svc.RecordTurn(context.Background(), &dto.UpdateChatRequest{
		ChatId:    stale.String(),
		Role:      constant.ChatRoleHuman,
		Content:   "hello again",
		UserId:    "U",
		AgentName: constant.AgentNameChat,
	})
	require.NoError(t, err)

	assert.NotEqual(t, stale, res.ChatId)
	assert.Len(t, uow.infos.rows, 1)
}

func TestRecordTurnRejectsMalformedChatId(t *testing.T) {
	svc, _, _ := newTestService(&scriptedProvider{})

	_, err := svc.RecordTurn(context.Background(), &dto.UpdateChatRequest{
		ChatId:    "not-a-uuid",
		Role:      constant.ChatRoleHuman,
		Content:   "hello",
		UserId:    "U",
		AgentName: constant.AgentNameChat,
	})
	assert.Error(t, err)
}

func TestGetHistoryScopesByAgentAndOrdersByCreatedAt(t *testing.T) {
	svc, uow, _ := newTestService(&scriptedProvider{})
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	chatA := uuid.New()
	chatB := uuid.New()
	uow.infos.rows = []*entity.ChatInfo{
		{ChatId: chatA, UserId: "U", AgentName: constant.AgentNameChat, CreatedAt: base},
		{ChatId: chatB, UserId: "U", AgentName: constant.AgentNameRecommendation, CreatedAt: base},
	}
	uow.details.rows = []*entity.ChatDetails{
		{MessageId: uuid.New(), ChatId: chatA, Role: constant.ChatRoleAgent, Content: "later", CreatedAt: base.Add(2 * time.Minute)},
		{MessageId: uuid.New(), ChatId: chatB, Role: constant.ChatRoleHuman, Content: "other persona", CreatedAt: base.Add(time.Minute)},
		{MessageId: uuid.New(), ChatId: chatA, Role: constant.ChatRoleHuman, Content: "earlier", CreatedAt: base},
	}

	history, err := svc.GetHistory(ctx, &dto.HistoryFilter{UserId: "U", AgentName: constant.AgentNameChat})
	require.NoError(t, err)

	require.Len(t, history, 2)
	assert.Equal(t, "earlier", history[0].Content)
	assert.Equal(t, "later", history[1].Content)
	for _, turn := range history {
		assert.Equal(t, chatA, turn.ChatId)
	}
}

func TestGetHistoryReturnsEmptyListWhenNothingMatches(t *testing.T) {
	svc, _, _ := newTestService(&scriptedProvider{})

	history, err := svc.GetHistory(context.Background(), &dto.HistoryFilter{UserId: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestGeneralChatRunsExtractionOnLiteralQuery(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"content": "Here you go!", "need_recommendation": true}`,
		validTraitJSON(t),
		"sounds like happy pop to me",
	}}
	svc, uow, _ := newTestService(provider)
	ctx := context.Background()

	chatId := uuid.New()
	uow.infos.rows = []*entity.ChatInfo{
		{ChatId: chatId, UserId: "U", AgentName: constant.AgentNameChat, CreatedAt: time.Now()},
	}
	uow.details.rows = []*entity.ChatDetails{
		{MessageId: uuid.New(), ChatId: chatId, Role: constant.ChatRoleHuman, Content: "happy upbeat song", CreatedAt: time.Now()},
	}

	res, err := svc.GeneralChat(ctx, &dto.GeneralChatRequest{
		UserId: "U",
		Query:  "happy upbeat song",
	})
	require.NoError(t, err)

	assert.Equal(t, "Here you go!", res.Content)
	require.NotNil(t, res.Traits)
	assert.NotEmpty(t, res.Traits.Genres)

	// Call order: router first, then the trait and genre completions, both
	// against the untouched query string.
	require.Len(t, provider.userTexts, 3)
	assert.Equal(t, "happy upbeat song", provider.userTexts[1])
	assert.Equal(t, "happy upbeat song", provider.userTexts[2])
}

func TestGeneralChatSkipsExtractionWhenNotNeeded(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"content": "Tell me more about your taste.", "need_recommendation": false}`,
	}}
	svc, _, _ := newTestService(provider)

	res, err := svc.GeneralChat(context.Background(), &dto.GeneralChatRequest{
		UserId: "U",
		Query:  "just chatting",
	})
	require.NoError(t, err)

	assert.Equal(t, "Tell me more about your taste.", res.Content)
	assert.Nil(t, res.Traits)
	assert.Len(t, provider.userTexts, 1)
}

func TestAnalyzePreferenceRequiresHistory(t *testing.T) {
	svc, _, _ := newTestService(&scriptedProvider{})

	_, err := svc.AnalyzePreference(context.Background(), &dto.AnalyzePreferenceRequest{UserId: "U"})
	assert.Error(t, err)
}

func TestAnalyzePreferenceUsesHumanTurnsOfAgentScope(t *testing.T) {
	provider := &scriptedProvider{responses: []string{"Prefers calm jazz in the evening."}}
	svc, uow, _ := newTestService(provider)

	chatId := uuid.New()
	uow.infos.rows = []*entity.ChatInfo{
		{ChatId: chatId, UserId: "U", AgentName: constant.AgentNameRecommendation, CreatedAt: time.Now()},
	}
	uow.details.rows = []*entity.ChatDetails{
		{MessageId: uuid.New(), ChatId: chatId, Role: constant.ChatRoleHuman, Content: "calm jazz please", CreatedAt: time.Now()},
		{MessageId: uuid.New(), ChatId: chatId, Role: constant.ChatRoleAgent, Content: "noted!", CreatedAt: time.Now()},
	}

	res, err := svc.AnalyzePreference(context.Background(), &dto.AnalyzePreferenceRequest{UserId: "U"})
	require.NoError(t, err)

	assert.Equal(t, "Prefers calm jazz in the evening.", res.Analysis)
	require.Len(t, provider.userTexts, 1)
	assert.Contains(t, provider.userTexts[0], "calm jazz please")
	assert.NotContains(t, provider.userTexts[0], "noted!")
}

func TestGetInfoNotFound(t *testing.T) {
	svc, _, _ := newTestService(&scriptedProvider{})

	_, err := svc.GetInfo(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestGetInfoCachesImmutableRow(t *testing.T) {
	svc, uow, _ := newTestService(&scriptedProvider{})

	chatId := uuid.New()
	uow.infos.rows = []*entity.ChatInfo{
		{ChatId: chatId, UserId: "U", AgentName: constant.AgentNameChat, CreatedAt: time.Now()},
	}

	first, err := svc.GetInfo(context.Background(), chatId)
	require.NoError(t, err)

	// Drop the backing row; the cached copy must still be served.
	uow.infos.rows = nil
	second, err := svc.GetInfo(context.Background(), chatId)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
