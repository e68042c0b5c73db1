package provider

import (
	"fmt"
	"testing"

	"expense-manager/internal/domain/dto"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textUpdate(userID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: userID, UserName: "amrit", FirstName: "Amrit"},
		Chat:      &tgbotapi.Chat{ID: userID},
		Text:      text,
	}}
}

func buttonUpdate(userID int64, choice string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb1",
		From:    &tgbotapi.User{ID: userID, UserName: "amrit", FirstName: "Amrit"},
		Message: &tgbotapi.Message{MessageID: 7, Chat: &tgbotapi.Chat{ID: userID}},
		Data:    choice,
	}}
}

func TestDispatchKeepsOneUserOnOneLane(t *testing.T) {
	updates := make(chan tgbotapi.Update, 32)
	lanes := make([]chan tgbotapi.Update, 4)
	for i := range lanes {
		lanes[i] = make(chan tgbotapi.Update, 32)
	}

	// Interleave rapid-fire events from two users, the double-tap pattern.
	for i := 0; i < 8; i++ {
		updates <- textUpdate(42, fmt.Sprintf("a%d", i))
		updates <- buttonUpdate(42, fmt.Sprintf("b%d", i))
		updates <- textUpdate(7, fmt.Sprintf("c%d", i))
	}
	close(updates)

	dispatchUpdates(updates, lanes)

	laneOf := map[int64]int{}
	perUser := map[int64][]string{}
	for i, lane := range lanes {
		for update := range lane {
			uid := updateUserID(update)
			if seen, ok := laneOf[uid]; ok {
				require.Equal(t, seen, i, "user %d split across lanes %d and %d", uid, seen, i)
			}
			laneOf[uid] = i
			if update.Message != nil {
				perUser[uid] = append(perUser[uid], update.Message.Text)
			} else {
				perUser[uid] = append(perUser[uid], update.CallbackQuery.Data)
			}
		}
	}

	// Nothing lost, and each user's events stay in arrival order.
	assert.Equal(t, []string{"a0", "b0", "a1", "b1", "a2", "b2", "a3", "b3", "a4", "b4", "a5", "b5", "a6", "b6", "a7", "b7"}, perUser[42])
	assert.Equal(t, []string{"c0", "c1", "c2", "c3", "c4", "c5", "c6", "c7"}, perUser[7])
}

func TestLaneForIsStableAndInRange(t *testing.T) {
	for _, userID := range []int64{0, 1, 7, 42, 1<<40 + 3, -5} {
		first := laneFor(userID, 8)
		assert.GreaterOrEqual(t, first, 0)
		assert.Less(t, first, 8)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, laneFor(userID, 8), "user %d must always map to the same lane", userID)
		}
	}
}

func TestToEventMapsUpdates(t *testing.T) {
	ev, ok := toEvent(buttonUpdate(42, "personal_food"))
	require.True(t, ok)
	assert.Equal(t, dto.EventButton, ev.Type)
	assert.Equal(t, int64(42), ev.UserID)
	assert.Equal(t, "personal_food", ev.Choice)
	assert.Equal(t, 7, ev.MessageID)

	ev, ok = toEvent(textUpdate(42, "120"))
	require.True(t, ok)
	assert.Equal(t, dto.EventText, ev.Type)
	assert.Equal(t, "120", ev.Text)

	cmd := textUpdate(42, "/start")
	cmd.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}}
	ev, ok = toEvent(cmd)
	require.True(t, ok)
	assert.Equal(t, dto.EventCommand, ev.Type)
	assert.Equal(t, "start", ev.Command)

	_, ok = toEvent(tgbotapi.Update{})
	assert.False(t, ok)
}
