package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"expense-manager/internal/domain/dto"
	"expense-manager/internal/domain/entities"
	"expense-manager/internal/infra/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type stubExpenseStore struct {
	mu         sync.Mutex
	appended   []entities.ExpenseRecord
	appendErr  error
	records    []entities.ExpenseRecord
	queryErr   error
	history    []entities.ChatHistoryEntry
	historyErr error
	forced     []bool
}

func (s *stubExpenseStore) Append(_ context.Context, rec entities.ExpenseRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return "", s.appendErr
	}
	rec.TransactionID = fmt.Sprintf("TXN%d_%d", rec.UserID, 1717243200)
	s.appended = append(s.appended, rec)
	return rec.TransactionID, nil
}

func (s *stubExpenseStore) Query(_ context.Context, userID int64, forceRefresh bool) ([]entities.ExpenseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forced = append(s.forced, forceRefresh)
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	var out []entities.ExpenseRecord
	for _, rec := range s.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *stubExpenseStore) QueryHistory(_ context.Context, _ int64, limit int) ([]entities.ChatHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.historyErr != nil {
		return nil, s.historyErr
	}
	entries := s.history
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

type stubRecorder struct {
	mu      sync.Mutex
	entries []entities.ChatHistoryEntry
}

func (r *stubRecorder) Record(entry entities.ChatHistoryEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *stubRecorder) Close() {}

func (r *stubRecorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.ActionType)
	}
	return out
}

type ConversationSuite struct {
	suite.Suite
	store    *stubExpenseStore
	recorder *stubRecorder
	svc      *ConversationService
	ctx      context.Context
}

func (s *ConversationSuite) SetupTest() {
	s.store = &stubExpenseStore{}
	s.recorder = &stubRecorder{}
	s.svc = NewConversationService(logger.NewLogger(context.Background(), true), s.store, s.recorder)
	s.ctx = context.Background()
}

func (s *ConversationSuite) cmd(userID int64, command string) dto.Reply {
	return s.svc.HandleEvent(s.ctx, dto.InboundEvent{
		Type: dto.EventCommand, UserID: userID, Username: "amrit", FirstName: "Amrit",
		ChatID: userID, MessageID: 1, Command: command,
	})
}

func (s *ConversationSuite) btn(userID int64, choice string) dto.Reply {
	return s.svc.HandleEvent(s.ctx, dto.InboundEvent{
		Type: dto.EventButton, UserID: userID, Username: "amrit", FirstName: "Amrit",
		ChatID: userID, MessageID: 2, Choice: choice,
	})
}

func (s *ConversationSuite) txt(userID int64, text string) dto.Reply {
	return s.svc.HandleEvent(s.ctx, dto.InboundEvent{
		Type: dto.EventText, UserID: userID, Username: "amrit", FirstName: "Amrit",
		ChatID: userID, MessageID: 3, Text: text,
	})
}

func (s *ConversationSuite) TestStartCommandShowsMainMenu() {
	reply := s.cmd(42, "start")
	s.Contains(reply.Text, "Amrit")
	s.True(reply.Markdown)
	s.Len(reply.Choices, 6)
	s.Equal("personal", reply.Choices[0][0].ID)
}

func (s *ConversationSuite) TestAmountValidation() {
	s.btn(42, "personal")
	s.btn(42, "personal_food")

	for _, bad := range []string{"abc", "12abc", ""} {
		reply := s.txt(42, bad)
		s.Equal("❌ Please enter a valid number", reply.Text, "input %q", bad)
	}
	for _, bad := range []string{"0", "-5", "0.00"} {
		reply := s.txt(42, bad)
		s.Equal("❌ Amount must be greater than 0", reply.Text, "input %q", bad)
	}

	// Rejections keep the session on the same step.
	sess := s.svc.Sessions.Get(42)
	s.Require().NotNil(sess)
	s.Equal(entities.StepAmount, sess.Awaiting)

	reply := s.txt(42, " 250.50 ")
	s.Contains(reply.Text, "₹250.5")
	s.NotEmpty(reply.Choices)
	s.True(sess.Amount.Equal(decimal.RequireFromString("250.50")))
	s.Equal(entities.StepPaymentMode, sess.Awaiting)
}

func (s *ConversationSuite) TestEndToEndPersonalFlow() {
	reply := s.btn(42, "personal")
	s.Contains(reply.Text, "Personal")

	reply = s.btn(42, "personal_food")
	s.Contains(reply.Text, "Food")

	reply = s.txt(42, "120")
	s.Contains(reply.Text, "payment mode")

	reply = s.btn(42, "payment_cash")
	s.Contains(reply.Text, "Cash")

	reply = s.btn(42, "skip_description")
	s.Contains(reply.Text, "Transaction Successfully Recorded")
	s.Contains(reply.Text, "`", "confirmation shows the short transaction id in code style")
	s.True(reply.EditInPlace)

	s.Require().Len(s.store.appended, 1)
	rec := s.store.appended[0]
	s.Equal(int64(42), rec.UserID)
	s.Equal(entities.KindPersonal, rec.Kind)
	s.Equal("Food", rec.Category)
	s.True(rec.Amount.Equal(decimal.NewFromInt(120)))
	s.Equal(entities.PayCash, rec.PaymentMode)
	s.Empty(rec.Description)

	// Draft gone after commit, and the whole flow hit the audit log.
	s.Nil(s.svc.Sessions.Get(42))
	s.Contains(s.recorder.actions(), entities.ActionExpenseAdded)
}

func (s *ConversationSuite) TestSplitFlowWithNamesAndDescription() {
	s.btn(42, "split")
	reply := s.btn(42, "split_food")
	s.Contains(reply.Text, "How do you want to split?")

	reply = s.btn(42, "split_equal")
	s.Contains(reply.Text, "Equal")

	reply = s.txt(42, "Amrit, Daksh,, Dhruv ,")
	s.Contains(reply.Text, "Amrit, Daksh, Dhruv")

	s.txt(42, "300")
	s.btn(42, "payment_upi")
	reply = s.txt(42, "Dinner at Pind Balluchi")
	s.Contains(reply.Text, "Transaction Successfully Recorded")
	s.Contains(reply.Text, "Split with: Amrit, Daksh, Dhruv")

	s.Require().Len(s.store.appended, 1)
	rec := s.store.appended[0]
	s.Equal(entities.KindSplit, rec.Kind)
	s.Equal(entities.SplitEqual, rec.SplitType)
	s.Equal([]string{"Amrit", "Daksh", "Dhruv"}, rec.SplitWith)
	s.Equal(entities.PayUpi, rec.PaymentMode)
	s.Equal("Dinner at Pind Balluchi", rec.Description)
}

func (s *ConversationSuite) TestEmptyNameListRejected() {
	s.btn(42, "split")
	s.btn(42, "split_outing")
	s.btn(42, "split_custom_type")

	reply := s.txt(42, "  ,  , ")
	s.Equal("❌ Please enter at least one name.", reply.Text)

	sess := s.svc.Sessions.Get(42)
	s.Require().NotNil(sess)
	s.Equal(entities.StepSplitNames, sess.Awaiting)
	s.Equal(entities.SplitCustom, sess.SplitType)
}

func (s *ConversationSuite) TestIdleTextPromptsStart() {
	reply := s.txt(42, "hello there")
	s.Equal("Please use /start to begin.", reply.Text)
	s.Empty(s.store.appended)
}

func (s *ConversationSuite) TestBackToMainAbandonsDraft() {
	s.btn(42, "personal")
	s.btn(42, "personal_travel")
	s.Require().NotNil(s.svc.Sessions.Get(42))

	reply := s.btn(42, "back_to_main")
	s.Len(reply.Choices, 6)
	s.Nil(s.svc.Sessions.Get(42))

	// The abandoned amount prompt no longer accepts input.
	reply = s.txt(42, "120")
	s.Equal("Please use /start to begin.", reply.Text)
}

func (s *ConversationSuite) TestCommitFailureClearsSession() {
	s.store.appendErr = errors.New("remote write failed")

	s.btn(42, "personal")
	s.btn(42, "personal_bills")
	s.txt(42, "900")
	s.btn(42, "payment_card")
	reply := s.btn(42, "skip_description")

	s.Equal("❌ Failed to save. Try again.", reply.Text)
	s.Nil(s.svc.Sessions.Get(42))
	s.NotContains(s.recorder.actions(), entities.ActionExpenseAdded)
}

func (s *ConversationSuite) TestPaymentModeWithoutSessionPromptsStart() {
	reply := s.btn(42, "payment_cash")
	s.Equal("Please use /start to begin.", reply.Text)
	s.Len(reply.Choices, 6)
}

func (s *ConversationSuite) TestDescriptionTruncatedAtCap() {
	s.btn(42, "personal")
	s.btn(42, "personal_shopping")
	s.txt(42, "50")
	s.btn(42, "payment_online")
	s.txt(42, strings.Repeat("₹", 300))

	s.Require().Len(s.store.appended, 1)
	desc := s.store.appended[0].Description
	s.Equal(200, utf8.RuneCountInString(desc))
	s.True(utf8.ValidString(desc), "cap must fall on a character boundary")
}

func (s *ConversationSuite) TestSessionsAreIsolatedPerUser() {
	s.btn(1, "personal")
	s.btn(1, "personal_food")
	s.btn(2, "split")
	s.btn(2, "split_party")

	s.txt(1, "100")
	s.btn(1, "payment_cash")
	s.btn(1, "skip_description")

	s.Require().Len(s.store.appended, 1)
	s.Equal(int64(1), s.store.appended[0].UserID)

	sess := s.svc.Sessions.Get(2)
	s.Require().NotNil(sess)
	s.Equal("Party", sess.Category)
}

func (s *ConversationSuite) TestDebugCommandForcesRemoteRead() {
	s.store.records = []entities.ExpenseRecord{{UserID: 42, Category: "Food", Amount: decimal.NewFromInt(10)}}

	reply := s.cmd(42, "debug")
	s.Contains(reply.Text, "Debug Info")
	s.Contains(reply.Text, "42")
	s.Require().Len(s.store.forced, 1)
	s.True(s.store.forced[0])
}

func (s *ConversationSuite) TestViewExpensesWhenEmpty() {
	reply := s.btn(42, "view_expenses")
	s.Contains(reply.Text, "No expenses recorded yet")
	s.Len(reply.Choices, 6)
}

func (s *ConversationSuite) TestViewExpensesWhenStoreFails() {
	s.store.queryErr = errors.New("backend unavailable")
	reply := s.btn(42, "view_expenses")
	s.Contains(reply.Text, "Having trouble loading your expenses")
}

func (s *ConversationSuite) TestViewExpensesSummarizes() {
	s.store.records = []entities.ExpenseRecord{
		{UserID: 42, Kind: entities.KindPersonal, Category: "Food", Amount: decimal.NewFromInt(100), PaymentMode: entities.PayCash},
		{UserID: 42, Kind: entities.KindPersonal, Category: "Food", Amount: decimal.NewFromInt(200), PaymentMode: entities.PayCash},
		{UserID: 42, Kind: entities.KindSplit, Category: "Travel", Amount: decimal.NewFromInt(150), PaymentMode: entities.PayUpi},
	}

	reply := s.btn(42, "view_expenses")
	s.Contains(reply.Text, "Total Spent: ₹450.00")
	s.Contains(reply.Text, "Personal: ₹300.00")
	s.Contains(reply.Text, "Split: ₹150.00")
	s.Contains(reply.Text, "Food: ₹300.00")
}

func (s *ConversationSuite) TestUnknownButtonFallsBackToMainMenu() {
	reply := s.btn(42, "no_such_choice")
	s.Equal("Please use /start to begin.", reply.Text)
	s.Len(reply.Choices, 6)
}

func TestConversationSuite(t *testing.T) {
	suite.Run(t, new(ConversationSuite))
}

func TestParseNameList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"Amrit, Daksh,, Dhruv ,", []string{"Amrit", "Daksh", "Dhruv"}},
		{"Solo", []string{"Solo"}},
		{"  ,  , ", []string{}},
		{"", []string{}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseNameList(tc.in), "input %q", tc.in)
	}
}

func TestTitleCaseNormalizesMenuValues(t *testing.T) {
	require.Equal(t, "Group Activity", titleCase(strings.ReplaceAll("group_activity", "_", " ")))
	require.Equal(t, "Cash", titleCase("cash"))
}
