package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CHAT_TURN_RECORDED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation used by publishers.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const TypeChatTurnRecorded = "CHAT_TURN_RECORDED"

// NewChatTurnRecorded is emitted after a conversational turn is persisted.
func NewChatTurnRecorded(chatID, messageID, userID, agentName, role string) BaseEvent {
	return BaseEvent{
		Type: TypeChatTurnRecorded,
		Data: map[string]interface{}{
			"chat_id":    chatID,
			"message_id": messageID,
			"user_id":    userID,
			"agent_name": agentName,
			"role":       role,
		},
		OccurredAt: time.Now(),
	}
}
