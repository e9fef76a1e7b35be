package service

import (
	"context"
	"sort"
	"time"

	"ai-musicchat-be/internal/constant"
	"ai-musicchat-be/internal/dto"
	"ai-musicchat-be/internal/entity"
	"ai-musicchat-be/internal/pkg/logger"
	"ai-musicchat-be/internal/pkg/serverutils"
	"ai-musicchat-be/internal/repository/specification"
	"ai-musicchat-be/internal/repository/unitofwork"
	"ai-musicchat-be/pkg/events"
	"ai-musicchat-be/pkg/music/analyzer"
	"ai-musicchat-be/pkg/music/chatrouter"
	"ai-musicchat-be/pkg/music/traits"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

type IChatService interface {
	RecordTurn(ctx context.Context, req *dto.UpdateChatRequest) (*dto.UpdateChatResponse, error)
	GetInfo(ctx context.Context, chatId uuid.UUID) (*dto.ChatInfoResponse, error)
	GetTurn(ctx context.Context, messageId uuid.UUID) (*dto.ChatDetailsResponse, error)
	GetHistory(ctx context.Context, filter *dto.HistoryFilter) ([]*dto.ChatDetailsResponse, error)
	GeneralChat(ctx context.Context, req *dto.GeneralChatRequest) (*dto.GeneralChatResponse, error)
	AnalyzePreference(ctx context.Context, req *dto.AnalyzePreferenceRequest) (*dto.AnalyzePreferenceResponse, error)
	ExtractTraits(ctx context.Context, query string) (*traits.Traits, error)
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	router           *chatrouter.Router
	analyzer         *analyzer.Analyzer
	extractor        *traits.Extractor
	publisherService IPublisherService
	infoCache        *gocache.Cache
	logger           logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	router *chatrouter.Router,
	preferenceAnalyzer *analyzer.Analyzer,
	extractor *traits.Extractor,
	publisherService IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		router:           router,
		analyzer:         preferenceAnalyzer,
		extractor:        extractor,
		publisherService: publisherService,
		// ChatInfo rows are immutable once written, so cached entries
		// never go stale.
		infoCache: gocache.New(gocache.NoExpiration, 0),
		logger:    log,
	}
}

func (c *chatService) RecordTurn(ctx context.Context, req *dto.UpdateChatRequest) (*dto.UpdateChatResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	var info *entity.ChatInfo
	if req.ChatId != "" {
		chatId, err := uuid.Parse(req.ChatId)
		if err != nil {
			return nil, serverutils.NewBadRequestError("invalid chat_id format", err)
		}
		info, err = uow.ChatInfoRepository().FindOne(ctx, specification.ByChatID{ChatID: chatId})
		if err != nil {
			return nil, err
		}
	}

	// A missing or unresolvable chat_id starts a fresh conversation with a
	// newly generated identifier. The info row is written before the turn.
	if info == nil {
		info = &entity.ChatInfo{
			ChatId:    uuid.New(),
			UserId:    req.UserId,
			UserName:  req.UserName,
			AgentId:   req.AgentId,
			AgentName: req.AgentName,
			CreatedAt: time.Now(),
		}
		if err := uow.ChatInfoRepository().Create(ctx, info); err != nil {
			return nil, err
		}
	}

	details := &entity.ChatDetails{
		MessageId: uuid.New(),
		ChatId:    info.ChatId,
		Role:      req.Role,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatDetailsRepository().Create(ctx, details); err != nil {
		return nil, err
	}

	evt := events.NewChatTurnRecorded(info.ChatId.String(), details.MessageId.String(), info.UserId, info.AgentName, details.Role)
	if err := c.publisherService.Publish(ctx, evt); err != nil {
		c.logger.Warn("chat", "Failed to publish turn recorded event", map[string]interface{}{
			"chat_id": info.ChatId.String(),
			"error":   err.Error(),
		})
	}

	return &dto.UpdateChatResponse{ChatId: info.ChatId}, nil
}

func (c *chatService) GetInfo(ctx context.Context, chatId uuid.UUID) (*dto.ChatInfoResponse, error) {
	if cached, ok := c.infoCache.Get(chatId.String()); ok {
		return cached.(*dto.ChatInfoResponse), nil
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	info, err := uow.ChatInfoRepository().FindOne(ctx, specification.ByChatID{ChatID: chatId})
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, serverutils.NewNotFoundError("chat not found")
	}

	res := &dto.ChatInfoResponse{
		ChatId:    info.ChatId,
		UserId:    info.UserId,
		UserName:  info.UserName,
		AgentId:   info.AgentId,
		AgentName: info.AgentName,
		CreatedAt: info.CreatedAt,
	}
	c.infoCache.Set(chatId.String(), res, gocache.NoExpiration)
	return res, nil
}

func (c *chatService) GetTurn(ctx context.Context, messageId uuid.UUID) (*dto.ChatDetailsResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	details, err := uow.ChatDetailsRepository().FindOne(ctx, specification.ByMessageID{MessageID: messageId})
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, serverutils.NewNotFoundError("message not found")
	}

	return &dto.ChatDetailsResponse{
		MessageId: details.MessageId,
		ChatId:    details.ChatId,
		Role:      details.Role,
		Content:   details.Content,
		CreatedAt: details.CreatedAt,
	}, nil
}

func (c *chatService) GetHistory(ctx context.Context, filter *dto.HistoryFilter) ([]*dto.ChatDetailsResponse, error) {
	history, err := c.fetchHistory(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatDetailsResponse, len(history))
	for i, turn := range history {
		result[i] = &dto.ChatDetailsResponse{
			MessageId: turn.MessageId,
			ChatId:    turn.ChatId,
			Role:      turn.Role,
			Content:   turn.Content,
			CreatedAt: turn.CreatedAt,
		}
	}
	return result, nil
}

// fetchHistory resolves the turns visible under the filter. A concrete
// chat_id short-circuits the owner lookup; otherwise all chats owned by the
// user (optionally narrowed to one agent persona) are merged. The merged
// result is always sorted ascending by created_at, since the per-chat and
// multi-chat fetch paths give no ordering guarantee of their own.
func (c *chatService) fetchHistory(ctx context.Context, filter *dto.HistoryFilter) ([]*entity.ChatDetails, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	var chatIds []uuid.UUID
	if filter.ChatId != "" {
		chatId, err := uuid.Parse(filter.ChatId)
		if err != nil {
			return nil, serverutils.NewBadRequestError("invalid chat_id format", err)
		}
		chatIds = []uuid.UUID{chatId}
	} else {
		infoSpecs := []specification.Specification{specification.ByUserID{UserID: filter.UserId}}
		if filter.AgentName != "" {
			infoSpecs = append(infoSpecs, specification.ByAgentName{AgentName: filter.AgentName})
		}
		infos, err := uow.ChatInfoRepository().FindAll(ctx, infoSpecs...)
		if err != nil {
			return nil, err
		}
		for _, info := range infos {
			chatIds = append(chatIds, info.ChatId)
		}
	}

	if len(chatIds) == 0 {
		return []*entity.ChatDetails{}, nil
	}

	detailSpecs := []specification.Specification{specification.ByChatIDs{ChatIDs: chatIds}}
	if filter.Role != "" {
		detailSpecs = append(detailSpecs, specification.ByRole{Role: filter.Role})
	}
	detailSpecs = append(detailSpecs, specification.OrderBy{Field: "created_at"})
	history, err := uow.ChatDetailsRepository().FindAll(ctx, detailSpecs...)
	if err != nil {
		return nil, err
	}

	// The query already orders, but the ascending contract is re-asserted
	// here so it cannot drift with the storage path.
	sort.Slice(history, func(i, j int) bool {
		return history[i].CreatedAt.Before(history[j].CreatedAt)
	})
	return history, nil
}

func (c *chatService) GeneralChat(ctx context.Context, req *dto.GeneralChatRequest) (*dto.GeneralChatResponse, error) {
	agentName := req.AgentName
	if agentName == "" {
		agentName = constant.AgentNameChat
	}

	history, err := c.fetchHistory(ctx, &dto.HistoryFilter{
		UserId:    req.UserId,
		ChatId:    req.ChatId,
		AgentName: agentName,
	})
	if err != nil {
		return nil, err
	}

	decision, err := c.router.RouteTurn(ctx, req.Query, history)
	if err != nil {
		return nil, serverutils.NewBadRequestError("chat routing failed", err)
	}

	res := &dto.GeneralChatResponse{Content: decision.Content}
	if decision.NeedRecommendation {
		extracted, err := c.extractor.Extract(ctx, req.Query)
		if err != nil {
			return nil, serverutils.NewBadRequestError("trait extraction failed", err)
		}
		res.Traits = extracted
	}

	c.logger.Info("chat", "General chat turn routed", map[string]interface{}{
		"user_id":             req.UserId,
		"need_recommendation": decision.NeedRecommendation,
	})
	return res, nil
}

func (c *chatService) AnalyzePreference(ctx context.Context, req *dto.AnalyzePreferenceRequest) (*dto.AnalyzePreferenceResponse, error) {
	agentName := req.AgentName
	if agentName == "" {
		agentName = constant.AgentNameRecommendation
	}

	history, err := c.fetchHistory(ctx, &dto.HistoryFilter{
		UserId:    req.UserId,
		ChatId:    req.ChatId,
		Role:      constant.ChatRoleHuman,
		AgentName: agentName,
	})
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, serverutils.NewNotFoundError("no chat history to analyze")
	}

	analysis, err := c.analyzer.Analyze(ctx, history)
	if err != nil {
		return nil, serverutils.NewBadRequestError("preference analysis failed", err)
	}

	return &dto.AnalyzePreferenceResponse{Analysis: analysis}, nil
}

func (c *chatService) ExtractTraits(ctx context.Context, query string) (*traits.Traits, error) {
	extracted, err := c.extractor.Extract(ctx, query)
	if err != nil {
		return nil, serverutils.NewBadRequestError("trait extraction failed", err)
	}
	return extracted, nil
}
