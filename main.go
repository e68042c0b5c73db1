package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"expense-manager/internal/config"
	repoconstants "expense-manager/internal/domain/interfaces/repository/constants"
	Iservices "expense-manager/internal/domain/interfaces/services"
	"expense-manager/internal/infra/logger"
	"expense-manager/internal/infra/provider"
	"expense-manager/internal/infra/repository"
	"expense-manager/internal/infra/routes"
	"expense-manager/internal/infra/services"
	"expense-manager/internal/infra/store"
	"expense-manager/internal/middleware"
	client "expense-manager/internal/pkg"

	"github.com/gorilla/mux"
)

func main() {
	config.LoadEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log := logger.NewLogger(ctx, true)

	log.Info("Setting up remote spreadsheet...")
	env, err := client.NewSheetsEnvironment(ctx, log)
	if err != nil {
		log.Fatal(fmt.Sprintf("Failed to set up spreadsheet: %v", err))
	}

	expensesTable := repository.NewSheetsTable(env.Sheets, env.SpreadsheetID, repoconstants.ExpensesSheet)
	historyTable := repository.NewSheetsTable(env.Sheets, env.SpreadsheetID, repoconstants.ChatHistorySheet)

	expenseStore := store.NewExpenseStore(expensesTable, historyTable, log)
	recorder := services.NewHistoryRecorder(historyTable, log)

	var conversation Iservices.IConversationService = services.NewConversationService(log, expenseStore, recorder)

	token := config.GetEnv("BOT_TOKEN")
	bot, err := provider.NewTelegramBotProvider(token, conversation, log)
	if err != nil {
		log.Fatal(fmt.Sprintf("Failed to connect to Telegram: %v", err))
	}

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(log))
	routes.NewRoutes(router).Init()

	port := config.GetEnvDefault("PORT", "10000")
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	go func() {
		log.Info(fmt.Sprintf("Health server is running on port %s", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(fmt.Sprintf("Error running HTTP server: %s", err))
			os.Exit(1)
		}
	}()

	botDone := make(chan struct{})
	go func() {
		defer close(botDone)
		if err := bot.Run(ctx); err != nil {
			log.Error(fmt.Sprintf("Bot stopped: %v", err))
		}
	}()

	<-stop
	log.Info("Shutting down...")
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	} else {
		log.Info("Server stopped gracefully.")
	}

	// The recorder closes only after the bot's workers have drained, so no
	// in-flight event can record into a closed queue.
	<-botDone
	recorder.Close()
}
