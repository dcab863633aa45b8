package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/pbarbosa/novabank/internal/advisor"
	"github.com/pbarbosa/novabank/internal/domain"
	"github.com/pbarbosa/novabank/internal/ledger"
	"github.com/pbarbosa/novabank/internal/logger"
)

func main() {
	_ = godotenv.Load()
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "summary":
		runSummary(log)
	case "statement":
		runStatement(log)
	case "accrue":
		runAccrue(log)
	case "analyze":
		runAnalyze(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("NovaBank CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  summary    Print the derived account summary for the seed ledger")
	fmt.Println("  statement  Print the seed ledger grouped by date")
	fmt.Println("  accrue     Run one daily yield accrual pass for a given date")
	fmt.Println("  analyze    Run the AI analysis over the seed ledger")
	fmt.Println("  help       Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func seedEngine(log zerolog.Logger) *ledger.Engine {
	store, err := ledger.NewStore(domain.SeedTransactions())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed ledger")
	}
	return ledger.NewEngine(store)
}

func runSummary(log zerolog.Logger) {
	engine := seedEngine(log)
	s := engine.Summary()

	fmt.Println("\n=== Account Summary ===")
	fmt.Printf("Balance:         R$ %.2f\n", s.Balance)
	fmt.Printf("Income:          R$ %.2f\n", s.Income)
	fmt.Printf("Expenses:        R$ %.2f\n", s.Expenses)
	fmt.Printf("Credit limit:    R$ %.2f\n", s.CreditLimit)
	fmt.Printf("Credit used:     R$ %.2f\n", s.CreditUsed)
	fmt.Printf("Pending inflow:  R$ %.2f\n", s.PendingBalance)
	fmt.Println()
}

func runStatement(log zerolog.Logger) {
	engine := seedEngine(log)

	for _, group := range engine.Statement() {
		fmt.Printf("\n%s\n", group.Label)
		for _, tx := range group.Transactions {
			fmt.Printf("  %-30s %10.2f  [%s] %s\n", tx.Description, tx.Amount, tx.Status, tx.Category)
		}
	}
	fmt.Println()
}

func runAccrue(log zerolog.Logger) {
	fs := flag.NewFlagSet("accrue", flag.ExitOnError)
	date := fs.String("date", time.Now().Format(domain.DateLayout), "Accrual date (YYYY-MM-DD)")
	fs.Parse(os.Args[2:])

	engine := seedEngine(log)

	tx, err := engine.AccrueDailyYield(*date)
	if err != nil {
		log.Fatal().Err(err).Msg("Accrual failed")
	}
	if tx == nil {
		fmt.Println("No accrual: already applied for that date or balance not positive.")
		return
	}

	fmt.Printf("Accrued R$ %.5f on %s (%s)\n", tx.Amount, tx.Date, tx.Merchant)
	fmt.Printf("New balance: R$ %.2f\n", engine.Summary().Balance)
}

func runAnalyze(log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	engine := seedEngine(log)

	svc, err := advisor.New(ctx, os.Getenv("GEMINI_API_KEY"), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create advisor service")
	}

	result := svc.Analyze(ctx, engine.Transactions())

	fmt.Println("\n=== Resumo ===")
	fmt.Println(result.Summary)
	fmt.Println("\n=== Dicas de Economia ===")
	for i, tip := range result.SavingsTips {
		fmt.Printf("%d. %s\n", i+1, tip)
	}
	if len(result.Anomalies) > 0 {
		fmt.Println("\n=== Anomalias ===")
		for _, a := range result.Anomalies {
			fmt.Printf("- %s\n", a)
		}
	}
	fmt.Println()
}
