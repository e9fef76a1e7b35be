package implementation_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-musicchat-be/internal/constant"
	"ai-musicchat-be/internal/entity"
	"ai-musicchat-be/internal/model"
	"ai-musicchat-be/internal/repository/specification"
	"ai-musicchat-be/internal/repository/unitofwork"
	"ai-musicchat-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRepositoriesAgainstPostgres(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err, "Failed to connect to DB")
	require.NoError(t, gormDB.AutoMigrate(&model.ChatInfo{}, &model.ChatDetails{}))

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(ctx)

	assert.NotNil(t, uow.ChatInfoRepository())
	assert.NotNil(t, uow.ChatDetailsRepository())

	userId := "integration-" + uuid.NewString()
	info := &entity.ChatInfo{
		ChatId:    uuid.New(),
		UserId:    userId,
		UserName:  "Integration Test User",
		AgentId:   "agent-1",
		AgentName: constant.AgentNameChat,
		CreatedAt: time.Now(),
	}
	require.NoError(t, uow.ChatInfoRepository().Create(ctx, info))

	t.Run("Check ChatInfo lookup", func(t *testing.T) {
		found, err := uow.ChatInfoRepository().FindOne(ctx, specification.ByChatID{ChatID: info.ChatId})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, userId, found.UserId)

		missing, err := uow.ChatInfoRepository().FindOne(ctx, specification.ByChatID{ChatID: uuid.New()})
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Check ChatDetails filters", func(t *testing.T) {
		turns := []*entity.ChatDetails{
			{MessageId: uuid.New(), ChatId: info.ChatId, Role: constant.ChatRoleHuman, Content: "hello", CreatedAt: time.Now()},
			{MessageId: uuid.New(), ChatId: info.ChatId, Role: constant.ChatRoleAgent, Content: "hi!", CreatedAt: time.Now()},
		}
		for _, turn := range turns {
			require.NoError(t, uow.ChatDetailsRepository().Create(ctx, turn))
		}

		all, err := uow.ChatDetailsRepository().FindAll(ctx, specification.ByChatIDs{ChatIDs: []uuid.UUID{info.ChatId}})
		require.NoError(t, err)
		assert.Len(t, all, 2)

		humans, err := uow.ChatDetailsRepository().FindAll(ctx,
			specification.ByChatID{ChatID: info.ChatId},
			specification.ByRole{Role: constant.ChatRoleHuman},
		)
		require.NoError(t, err)
		require.Len(t, humans, 1)
		assert.Equal(t, "hello", humans[0].Content)

		count, err := uow.ChatDetailsRepository().Count(ctx, specification.ByChatID{ChatID: info.ChatId})
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	})
}
