package services

import (
	"expense-manager/internal/domain/dto"
	"expense-manager/internal/domain/entities"
)

// Choice ids carried in button-click events.
const (
	choicePersonal        = "personal"
	choiceSplit           = "split"
	choiceViewExpenses    = "view_expenses"
	choiceTransactions    = "transaction_history"
	choiceChatHistory     = "chat_history"
	choiceHelp            = "help"
	choiceBackToMain      = "back_to_main"
	choiceSplitEqual      = "split_equal"
	choiceSplitCustomType = "split_custom_type"
	choiceSkipDescription = "skip_description"

	personalPrefix = "personal_"
	splitPrefix    = "split_"
	paymentPrefix  = "payment_"
)

func mainMenu() [][]dto.Choice {
	return [][]dto.Choice{
		{{Label: "Personal 💰", ID: choicePersonal}},
		{{Label: "Split 👥", ID: choiceSplit}},
		{{Label: "View My Expenses 📊", ID: choiceViewExpenses}},
		{{Label: "Transaction History 📜", ID: choiceTransactions}},
		{{Label: "Chat History 💬", ID: choiceChatHistory}},
		{{Label: "Help ℹ️", ID: choiceHelp}},
	}
}

func personalCategoryMenu() [][]dto.Choice {
	return [][]dto.Choice{
		{{Label: "Travelling 🚖", ID: "personal_travel"}},
		{{Label: "Food 🍔", ID: "personal_food"}},
		{{Label: "Shopping 🛍", ID: "personal_shopping"}},
		{{Label: "Bills 💡", ID: "personal_bills"}},
		{{Label: "Entertainment 🎬", ID: "personal_entertainment"}},
		{{Label: "Health 🏥", ID: "personal_health"}},
		{{Label: "Education 📚", ID: "personal_education"}},
		{{Label: "Custom ✏️", ID: "personal_custom"}},
		{{Label: "« Back", ID: choiceBackToMain}},
	}
}

func splitCategoryMenu() [][]dto.Choice {
	return [][]dto.Choice{
		{{Label: "Outing 🎉", ID: "split_outing"}},
		{{Label: "Food 🍕", ID: "split_food"}},
		{{Label: "Travelling 🚆", ID: "split_travel"}},
		{{Label: "Group Activity 🎮", ID: "split_activity"}},
		{{Label: "Party 🎊", ID: "split_party"}},
		{{Label: "Custom ✏️", ID: "split_custom"}},
		{{Label: "« Back", ID: choiceBackToMain}},
	}
}

func splitTypeMenu() [][]dto.Choice {
	return [][]dto.Choice{
		{{Label: "Equal Split ⚖️", ID: choiceSplitEqual}},
		{{Label: "Custom Split ✏️", ID: choiceSplitCustomType}},
		{{Label: "« Back", ID: choiceSplit}},
	}
}

func paymentModeMenu() [][]dto.Choice {
	return [][]dto.Choice{
		{{Label: "Cash 💵", ID: "payment_cash"}},
		{{Label: "Online/Net Banking 🌐", ID: "payment_online"}},
		{{Label: "Card 💳", ID: "payment_card"}},
		{{Label: "UPI 📱", ID: "payment_upi"}},
	}
}

func skipDescriptionMenu() [][]dto.Choice {
	return [][]dto.Choice{
		{{Label: "Skip Description ⏭️", ID: choiceSkipDescription}},
	}
}

func paymentIcon(mode entities.PaymentMode) string {
	switch mode {
	case entities.PayCash:
		return "💵"
	case entities.PayOnline:
		return "🌐"
	case entities.PayCard:
		return "💳"
	case entities.PayUpi:
		return "📱"
	default:
		return "💰"
	}
}
