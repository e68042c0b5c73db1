package repoconstants

// Worksheet names inside the spreadsheet.
const (
	ExpensesSheet    = "Expenses"
	ChatHistorySheet = "Chat_History"
)

// Ledger column names, in persisted order.
const (
	ColTransactionID = "Transaction ID"
	ColTimestamp     = "Timestamp"
	ColUserID        = "User ID"
	ColUsername      = "Username"
	ColFirstName     = "First Name"
	ColExpenseType   = "Expense Type"
	ColCategory      = "Category"
	ColAmount        = "Amount"
	ColPaymentMode   = "Payment Mode"
	ColDescription   = "Description"
	ColDate          = "Date"
	ColStatus        = "Status"
	ColNotes         = "Notes"
	ColSplitWith     = "Split With"
	ColSplitType     = "Split Type"
	ColSplitDetails  = "Split Details"
)

// Audit-log column names, in persisted order.
const (
	ColActionType    = "Action Type"
	ColActionDetails = "Action Details"
	ColMessageText   = "Message Text"
	ColButtonClicked = "Button Clicked"
	ColChatID        = "Chat ID"
	ColMessageID     = "Message ID"
)

var ExpenseHeaders = []string{
	ColTransactionID, ColTimestamp, ColUserID, ColUsername, ColFirstName,
	ColExpenseType, ColCategory, ColAmount, ColPaymentMode, ColDescription,
	ColDate, ColStatus, ColNotes, ColSplitWith, ColSplitType, ColSplitDetails,
}

var HistoryHeaders = []string{
	ColTimestamp, ColUserID, ColUsername, ColFirstName,
	ColActionType, ColActionDetails, ColMessageText, ColButtonClicked,
	ColChatID, ColMessageID,
}
