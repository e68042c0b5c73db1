package provider

import (
	"context"
	"fmt"
	"sync"

	"expense-manager/internal/domain/dto"
	Iservices "expense-manager/internal/domain/interfaces/services"
	"expense-manager/internal/infra/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	defaultUpdateWorkers = 8
	laneBuffer           = 16
)

// TelegramBotProvider consumes Telegram updates over long polling, converts
// them to inbound events for the conversation service, and renders the
// resulting replies as messages with inline keyboards. Updates are handled
// by a bounded pool of workers, keyed by user id, so a slow remote call for
// one user never stalls the others while one user's events stay in order.
type TelegramBotProvider struct {
	Logger       *logger.Logger
	Conversation Iservices.IConversationService

	bot     *tgbotapi.BotAPI
	workers int
}

func NewTelegramBotProvider(token string, conversation Iservices.IConversationService, log *logger.Logger) (*TelegramBotProvider, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramBotProvider{
		Logger:       log,
		Conversation: conversation,
		bot:          bot,
		workers:      defaultUpdateWorkers,
	}, nil
}

func (p *TelegramBotProvider) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30

	updates := p.bot.GetUpdatesChan(cfg)
	p.Logger.Info(fmt.Sprintf("Bot is running as @%s", p.bot.Self.UserName))

	// One lane per worker. Sessions are mutated without locks, which is
	// only safe while a user's events are handled strictly one at a time.
	lanes := make([]chan tgbotapi.Update, p.workers)
	var wg sync.WaitGroup
	for i := range lanes {
		lane := make(chan tgbotapi.Update, laneBuffer)
		lanes[i] = lane
		wg.Add(1)
		go func() {
			defer wg.Done()
			for update := range lane {
				p.handleUpdate(ctx, update)
			}
		}()
	}

	go dispatchUpdates(updates, lanes)

	<-ctx.Done()
	p.bot.StopReceivingUpdates()
	wg.Wait()
	return nil
}

// dispatchUpdates fans updates out to lanes keyed by the sending user, so
// two events from the same user are never handled concurrently. Lanes are
// closed once the source channel drains.
func dispatchUpdates(updates <-chan tgbotapi.Update, lanes []chan tgbotapi.Update) {
	for update := range updates {
		lanes[laneFor(updateUserID(update), len(lanes))] <- update
	}
	for _, lane := range lanes {
		close(lane)
	}
}

func updateUserID(update tgbotapi.Update) int64 {
	if update.CallbackQuery != nil && update.CallbackQuery.From != nil {
		return update.CallbackQuery.From.ID
	}
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.ID
	}
	return 0
}

func laneFor(userID int64, lanes int) int {
	return int(uint64(userID) % uint64(lanes))
}

func (p *TelegramBotProvider) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			p.Logger.Error(fmt.Sprintf("Recovered from panic: %v", r))
		}
	}()

	ev, ok := toEvent(update)
	if !ok {
		return
	}

	if update.CallbackQuery != nil {
		if _, err := p.bot.Request(tgbotapi.NewCallback(update.CallbackQuery.ID, "")); err != nil {
			p.Logger.Warn(fmt.Sprintf("Failed to answer callback query: %v", err))
		}
	}

	reply := p.Conversation.HandleEvent(ctx, ev)
	p.send(ev, reply)
}

func toEvent(update tgbotapi.Update) (dto.InboundEvent, bool) {
	if update.CallbackQuery != nil {
		q := update.CallbackQuery
		ev := dto.InboundEvent{
			Type:      dto.EventButton,
			UserID:    q.From.ID,
			Username:  q.From.UserName,
			FirstName: q.From.FirstName,
			Choice:    q.Data,
		}
		if q.Message != nil {
			ev.ChatID = q.Message.Chat.ID
			ev.MessageID = q.Message.MessageID
		}
		return ev, true
	}

	if update.Message != nil && update.Message.From != nil {
		m := update.Message
		ev := dto.InboundEvent{
			UserID:    m.From.ID,
			Username:  m.From.UserName,
			FirstName: m.From.FirstName,
			ChatID:    m.Chat.ID,
			MessageID: m.MessageID,
			Text:      m.Text,
		}
		if m.IsCommand() {
			ev.Type = dto.EventCommand
			ev.Command = m.Command()
		} else {
			ev.Type = dto.EventText
		}
		return ev, true
	}

	return dto.InboundEvent{}, false
}

func (p *TelegramBotProvider) send(ev dto.InboundEvent, reply dto.Reply) {
	if reply.Text == "" || ev.ChatID == 0 {
		return
	}

	markup := toMarkup(reply.Choices)

	// Button replies edit the prompting message in place; everything else
	// goes out as a fresh message.
	if reply.EditInPlace && ev.Type == dto.EventButton && ev.MessageID != 0 {
		edit := tgbotapi.NewEditMessageText(ev.ChatID, ev.MessageID, reply.Text)
		if markup != nil {
			edit.ReplyMarkup = markup
		}
		if reply.Markdown {
			edit.ParseMode = tgbotapi.ModeMarkdown
		}
		if _, err := p.bot.Send(edit); err != nil {
			p.Logger.Error(fmt.Sprintf("Failed to edit message in chat %d: %v", ev.ChatID, err))
		}
		return
	}

	msg := tgbotapi.NewMessage(ev.ChatID, reply.Text)
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	if reply.Markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}
	if _, err := p.bot.Send(msg); err != nil {
		p.Logger.Error(fmt.Sprintf("Failed to send message to chat %d: %v", ev.ChatID, err))
	}
}

func toMarkup(choices [][]dto.Choice) *tgbotapi.InlineKeyboardMarkup {
	if len(choices) == 0 {
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(choices))
	for _, row := range choices {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, c := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(c.Label, c.ID))
		}
		rows = append(rows, buttons)
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

var _ IChatProvider = (*TelegramBotProvider)(nil)
