package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"expense-manager/internal/domain/dto"
	"expense-manager/internal/domain/entities"
	Iservices "expense-manager/internal/domain/interfaces/services"
	"expense-manager/internal/infra/logger"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	recentCount         = 5
	historyViewCount    = 15
	descriptionTextCap  = 200
	startOverText       = "Please use /start to begin."
	saveFailedText      = "❌ Failed to save. Try again."
	invalidAmountText   = "❌ Please enter a valid number"
	amountNotPositive   = "❌ Amount must be greater than 0"
	emptyNameListText   = "❌ Please enter at least one name."
	loadExpensesTrouble = "📊 *Your Expenses*\n\n" +
		"⚠️ Having trouble loading your expenses right now.\n\n" +
		"This might be due to:\n" +
		"• Temporary connection issue\n" +
		"• Remote sheet sync delay\n\n" +
		"Please try again in a moment, or check Transaction History."
)

// ConversationService is the per-user multi-step state machine. Each inbound
// event consults and mutates that user's session, optionally reads through
// or commits into the expense store, and produces the outbound reply. Every
// user-visible action is also recorded to the audit log, fire and forget.
type ConversationService struct {
	Logger   *logger.Logger
	Store    Iservices.IExpenseStore
	Recorder Iservices.IHistoryRecorder
	Sessions *SessionStore
}

func NewConversationService(log *logger.Logger, store Iservices.IExpenseStore, recorder Iservices.IHistoryRecorder) *ConversationService {
	return &ConversationService{
		Logger:   log,
		Store:    store,
		Recorder: recorder,
		Sessions: NewSessionStore(),
	}
}

func (cs *ConversationService) HandleEvent(ctx context.Context, ev dto.InboundEvent) dto.Reply {
	switch ev.Type {
	case dto.EventCommand:
		return cs.handleCommand(ctx, ev)
	case dto.EventButton:
		return cs.handleButton(ctx, ev)
	case dto.EventText:
		return cs.handleText(ctx, ev)
	default:
		return dto.TextReply(startOverText)
	}
}

func (cs *ConversationService) handleCommand(ctx context.Context, ev dto.InboundEvent) dto.Reply {
	cs.record(ev, entities.ActionCommand, "/"+ev.Command, ev.Text, "")

	switch ev.Command {
	case "start":
		return dto.Reply{Text: greetingText(ev.FirstName), Markdown: true, Choices: mainMenu()}
	case "debug":
		records, err := cs.Store.Query(ctx, ev.UserID, true)
		if err != nil {
			cs.Logger.Error(fmt.Sprintf("Debug command error: %v", err))
			return dto.TextReply(fmt.Sprintf("Debug Error: %v", err))
		}
		return dto.TextReply(debugText(ev.UserID, ev.Username, records))
	default:
		return dto.TextReply(startOverText)
	}
}

func (cs *ConversationService) handleButton(ctx context.Context, ev dto.InboundEvent) dto.Reply {
	cs.record(ev, entities.ActionButtonClick, ev.Choice, "", ev.Choice)

	switch ev.Choice {
	case choicePersonal:
		return dto.Reply{Text: "📌 Select a *Personal* expense category:", Markdown: true, Choices: personalCategoryMenu(), EditInPlace: true}

	case choiceSplit:
		return dto.Reply{Text: "📌 Select a *Split* expense category:", Markdown: true, Choices: splitCategoryMenu(), EditInPlace: true}

	case choiceSplitEqual, choiceSplitCustomType:
		return cs.selectSplitType(ev)

	case choiceViewExpenses:
		return cs.viewExpenses(ctx, ev)

	case choiceTransactions:
		return cs.viewTransactionHistory(ctx, ev)

	case choiceChatHistory:
		return cs.viewChatHistory(ctx, ev)

	case choiceHelp:
		return dto.Reply{Text: helpText(), Markdown: true, Choices: mainMenu(), EditInPlace: true}

	case choiceBackToMain:
		// Returning to the main menu abandons and resets any draft.
		cs.Sessions.Clear(ev.UserID)
		return dto.Reply{Text: "Choose an option:", Choices: mainMenu(), EditInPlace: true}

	case choiceSkipDescription:
		return cs.commit(ctx, ev, "")
	}

	switch {
	case strings.HasPrefix(ev.Choice, paymentPrefix):
		return cs.selectPaymentMode(ev)
	case strings.HasPrefix(ev.Choice, personalPrefix):
		return cs.selectCategory(ev, entities.KindPersonal, personalPrefix)
	case strings.HasPrefix(ev.Choice, splitPrefix):
		return cs.selectCategory(ev, entities.KindSplit, splitPrefix)
	}

	return dto.Reply{Text: startOverText, Choices: mainMenu(), EditInPlace: true}
}

func (cs *ConversationService) handleText(ctx context.Context, ev dto.InboundEvent) dto.Reply {
	cs.record(ev, entities.ActionMessageSent, "User input", ev.Text, "")

	sess := cs.Sessions.Get(ev.UserID)
	if sess == nil || sess.Awaiting == entities.StepNone {
		return dto.TextReply(startOverText)
	}

	switch sess.Awaiting {
	case entities.StepSplitNames:
		return cs.enterSplitNames(ev, sess)
	case entities.StepAmount:
		return cs.enterAmount(ev, sess)
	case entities.StepDescription:
		return cs.commit(ctx, ev, entities.TruncateRunes(ev.Text, descriptionTextCap))
	default:
		return dto.TextReply(startOverText)
	}
}

// selectCategory normalizes the chosen menu value and advances to the amount
// step for personal expenses or the split-type step for split expenses.
func (cs *ConversationService) selectCategory(ev dto.InboundEvent, kind entities.ExpenseKind, prefix string) dto.Reply {
	category := titleCase(strings.ReplaceAll(strings.TrimPrefix(ev.Choice, prefix), "_", " "))

	sess := cs.Sessions.GetOrCreate(ev.UserID)
	sess.Kind = kind
	sess.Category = category

	cs.record(ev, entities.ActionCategory, fmt.Sprintf("%s - %s", kind, category), "", "")

	if kind == entities.KindSplit {
		sess.Awaiting = entities.StepNone
		return dto.Reply{
			Text:        fmt.Sprintf("✅ Category: *%s* (Split)\n\nHow do you want to split?", category),
			Markdown:    true,
			Choices:     splitTypeMenu(),
			EditInPlace: true,
		}
	}

	sess.Awaiting = entities.StepAmount
	return dto.Reply{
		Text:        fmt.Sprintf("✅ Category: *%s* (Personal)\n\n💵 Enter the amount (₹):", category),
		Markdown:    true,
		EditInPlace: true,
	}
}

func (cs *ConversationService) selectSplitType(ev dto.InboundEvent) dto.Reply {
	splitType := entities.SplitEqual
	detail := "Equal Split"
	if ev.Choice == choiceSplitCustomType {
		splitType = entities.SplitCustom
		detail = "Custom Split"
	}

	sess := cs.Sessions.GetOrCreate(ev.UserID)
	sess.SplitType = splitType
	sess.Kind = entities.KindSplit
	sess.Awaiting = entities.StepSplitNames

	cs.record(ev, entities.ActionSplitType, detail, "", "")

	return dto.Reply{
		Text: fmt.Sprintf("✅ Split Type: *%s*\n\n"+
			"👥 Enter names of people to split with:\n"+
			"(Separate multiple names with commas)\n\n"+
			"Example: Amrit, Daksh, Dhruv", splitType),
		Markdown:    true,
		EditInPlace: true,
	}
}

func (cs *ConversationService) enterSplitNames(ev dto.InboundEvent, sess *entities.UserSession) dto.Reply {
	names := ParseNameList(ev.Text)
	if len(names) == 0 {
		return dto.TextReply(emptyNameListText)
	}

	sess.SplitWith = names
	sess.Awaiting = entities.StepAmount

	cs.record(ev, entities.ActionSplitNames, strings.Join(names, ", "), "", "")

	return dto.Reply{
		Text:     fmt.Sprintf("✅ Splitting with: *%s*\n\n💵 Enter the *total* amount (₹):", strings.Join(names, ", ")),
		Markdown: true,
	}
}

func (cs *ConversationService) enterAmount(ev dto.InboundEvent, sess *entities.UserSession) dto.Reply {
	amount, err := decimal.NewFromString(strings.TrimSpace(ev.Text))
	if err != nil {
		return dto.TextReply(invalidAmountText)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return dto.TextReply(amountNotPositive)
	}

	sess.Amount = amount
	sess.Awaiting = entities.StepPaymentMode

	cs.record(ev, entities.ActionAmount, "₹"+amount.String(), "", "")

	return dto.Reply{
		Text:    fmt.Sprintf("💵 Amount: ₹%s\n\n💳 Select payment mode:", amount.String()),
		Choices: paymentModeMenu(),
	}
}

func (cs *ConversationService) selectPaymentMode(ev dto.InboundEvent) dto.Reply {
	sess := cs.Sessions.Get(ev.UserID)
	if sess == nil || sess.Awaiting != entities.StepPaymentMode {
		return dto.Reply{Text: startOverText, Choices: mainMenu(), EditInPlace: true}
	}

	mode := entities.PaymentMode(titleCase(strings.TrimPrefix(ev.Choice, paymentPrefix)))
	if !entities.ValidPaymentMode(mode) {
		return dto.Reply{Text: startOverText, Choices: mainMenu(), EditInPlace: true}
	}

	sess.PaymentMode = mode
	sess.Awaiting = entities.StepDescription

	cs.record(ev, entities.ActionPaymentMode, string(mode), "", "")

	return dto.Reply{
		Text: fmt.Sprintf("💵 Amount: ₹%s\n%s Payment: %s\n\n📝 Add description (optional) or skip:",
			sess.Amount.String(), paymentIcon(mode), mode),
		Choices:     skipDescriptionMenu(),
		EditInPlace: true,
	}
}

// commit builds the record from the accumulated draft, appends it, and
// clears the session whether or not the append succeeded.
func (cs *ConversationService) commit(ctx context.Context, ev dto.InboundEvent, description string) dto.Reply {
	sess := cs.Sessions.Get(ev.UserID)
	if sess == nil || sess.PaymentMode == "" {
		cs.Sessions.Clear(ev.UserID)
		return dto.Reply{Text: startOverText, Choices: mainMenu(), EditInPlace: ev.Type == dto.EventButton}
	}

	rec := entities.ExpenseRecord{
		UserID:      ev.UserID,
		Username:    ev.Username,
		FirstName:   ev.FirstName,
		Kind:        sess.Kind,
		Category:    sess.Category,
		Amount:      sess.Amount,
		PaymentMode: sess.PaymentMode,
		Description: description,
		SplitWith:   sess.SplitWith,
		SplitType:   sess.SplitType,
	}

	txnID, err := cs.Store.Append(ctx, rec)
	cs.Sessions.Clear(ev.UserID)

	if err != nil {
		cs.Logger.Error(fmt.Sprintf("Error saving expense for user %d: %v", ev.UserID, err))
		return dto.Reply{Text: saveFailedText, Choices: mainMenu(), EditInPlace: ev.Type == dto.EventButton}
	}

	cs.record(ev, entities.ActionExpenseAdded,
		fmt.Sprintf("%s - %s - ₹%s - %s", rec.Kind, rec.Category, rec.Amount.String(), rec.PaymentMode),
		description, "")

	rec.TransactionID = txnID
	return dto.Reply{
		Text:        confirmationText(rec, txnID),
		Markdown:    true,
		Choices:     mainMenu(),
		EditInPlace: ev.Type == dto.EventButton,
	}
}

func (cs *ConversationService) viewExpenses(ctx context.Context, ev dto.InboundEvent) dto.Reply {
	records, err := cs.Store.Query(ctx, ev.UserID, true)
	if err != nil {
		cs.Logger.Error(fmt.Sprintf("Error in view_expenses: %v", err))
		return dto.Reply{Text: loadExpensesTrouble, Markdown: true, Choices: mainMenu(), EditInPlace: true}
	}
	if len(records) == 0 {
		return dto.Reply{
			Text:        "📊 *Your Expenses*\n\nNo expenses recorded yet!\n\nStart tracking by selecting an option below:",
			Markdown:    true,
			Choices:     mainMenu(),
			EditInPlace: true,
		}
	}

	summary := BuildSummary(records, recentCount)
	return dto.Reply{Text: summaryText(summary), Markdown: true, Choices: mainMenu(), EditInPlace: true}
}

func (cs *ConversationService) viewTransactionHistory(ctx context.Context, ev dto.InboundEvent) dto.Reply {
	records, err := cs.Store.Query(ctx, ev.UserID, true)
	if err != nil {
		cs.Logger.Error(fmt.Sprintf("Error in transaction_history: %v", err))
		return dto.Reply{
			Text:        "📜 *Transaction History*\n\n⚠️ Having trouble loading your transaction history right now.\n\nPlease try again in a moment.",
			Markdown:    true,
			Choices:     mainMenu(),
			EditInPlace: true,
		}
	}
	if len(records) == 0 {
		return dto.Reply{
			Text:        "📜 *Transaction History*\n\nNo transactions yet!\n\nStart tracking by selecting an option below:",
			Markdown:    true,
			Choices:     mainMenu(),
			EditInPlace: true,
		}
	}

	recent := RecentRecords(records, historyViewCount)
	return dto.Reply{Text: transactionHistoryText(recent), Markdown: true, Choices: mainMenu(), EditInPlace: true}
}

func (cs *ConversationService) viewChatHistory(ctx context.Context, ev dto.InboundEvent) dto.Reply {
	entries, err := cs.Store.QueryHistory(ctx, ev.UserID, historyViewCount)
	if err != nil {
		cs.Logger.Error(fmt.Sprintf("Error fetching chat log: %v", err))
		return dto.Reply{Text: "❌ Error fetching chat history. Please try again.", Choices: mainMenu(), EditInPlace: true}
	}
	if len(entries) == 0 {
		return dto.Reply{
			Text:        "💬 *Chat History*\n\nNo interactions logged yet!",
			Markdown:    true,
			Choices:     mainMenu(),
			EditInPlace: true,
		}
	}

	return dto.Reply{Text: chatHistoryText(entries), Markdown: true, Choices: mainMenu(), EditInPlace: true}
}

// record dispatches one audit line; the recorder never blocks or fails the
// conversational transition.
func (cs *ConversationService) record(ev dto.InboundEvent, actionType, details, messageText, button string) {
	cs.Recorder.Record(entities.ChatHistoryEntry{
		Timestamp:     time.Now(),
		UserID:        ev.UserID,
		Username:      ev.Username,
		FirstName:     ev.FirstName,
		ActionType:    actionType,
		ActionDetails: details,
		MessageText:   messageText,
		ButtonClicked: button,
		ChatID:        ev.ChatID,
		MessageID:     ev.MessageID,
	})
}

// ParseNameList splits a comma-separated list of participant names, trimming
// whitespace and dropping empty tokens.
func ParseNameList(text string) []string {
	parts := strings.Split(text, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

var _ Iservices.IConversationService = (*ConversationService)(nil)
