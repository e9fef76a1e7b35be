package constant

const (
	// Speaker tags stored on ChatDetails rows.
	ChatRoleHuman = "human"
	ChatRoleAgent = "agent"

	// Agent personas a conversation can be scoped to.
	AgentNameChat           = "Chat"
	AgentNameRecommendation = "Recommendation"
)
