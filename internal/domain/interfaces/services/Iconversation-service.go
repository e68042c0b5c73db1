package Iservices

import (
	"context"

	"expense-manager/internal/domain/dto"
)

// IConversationService routes one inbound user event through the per-user
// state machine and produces the outbound reply description.
type IConversationService interface {
	HandleEvent(ctx context.Context, event dto.InboundEvent) dto.Reply
}
