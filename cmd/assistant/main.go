package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/zeromicro/go-zero/core/logx"

	_ "azquote-api/internal/bootstrap/dotenv"
	agentpkg "azquote-api/pkg/agent"
	"azquote-api/pkg/journal"
	llmpkg "azquote-api/pkg/llm"
	pricingpkg "azquote-api/pkg/pricing"
)

func fatalf(format string, args ...interface{}) {
	logx.Errorf(format, args...)
	os.Exit(1)
}

func main() {
	var (
		llmPath     = flag.String("llm-config", "etc/llm.yaml", "path to llm client configuration")
		pricingPath = flag.String("pricing-config", "etc/pricing.yaml", "path to retail pricing configuration")
		agentsPath  = flag.String("agents-config", "etc/agents.yaml", "path to agent pipeline configuration")
		journalDir  = flag.String("journal", "", "directory for proposal run records (empty disables)")
	)
	flag.Parse()
	logx.MustSetup(logx.LogConf{Mode: "console", Encoding: "plain"})
	logx.DisableStat()

	llmCfg, err := llmpkg.LoadConfig(*llmPath)
	if err != nil {
		fatalf("load llm config: %v", err)
	}
	llmClient, err := llmpkg.NewClient(llmCfg)
	if err != nil {
		fatalf("initialise llm client: %v", err)
	}
	defer func() {
		_ = llmClient.Close()
	}()

	pricingCfg, err := pricingpkg.LoadConfig(*pricingPath)
	if err != nil {
		fatalf("load pricing config: %v", err)
	}
	pricingClient, err := pricingpkg.NewClient(pricingCfg)
	if err != nil {
		fatalf("initialise pricing client: %v", err)
	}

	agentCfg, err := agentpkg.LoadConfig(*agentsPath)
	if err != nil {
		fatalf("load agents config: %v", err)
	}

	questionAgent, err := agentpkg.NewQuestionAgent(llmClient, agentCfg.Question, agentCfg.DoneSentinel)
	if err != nil {
		fatalf("initialise question agent: %v", err)
	}
	workflow, err := agentpkg.NewWorkflow(agentCfg, llmClient, pricingClient, pricingCfg.CurrencyCode)
	if err != nil {
		fatalf("initialise workflow: %v", err)
	}

	var runJournal *journal.Writer
	if *journalDir != "" {
		runJournal = journal.NewWriter(*journalDir)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nGoodbye!")
		cancel()
		os.Exit(0)
	}()

	thread, err := questionAgent.NewThread()
	if err != nil {
		fatalf("start conversation: %v", err)
	}

	fmt.Println("Welcome! Tell me about the solution you want to deploy on Azure.")
	fmt.Println("Type 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	done := false
	for turn := 0; turn < agentCfg.MaxTurns && !done; turn++ {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			turn--
			continue
		}
		if strings.EqualFold(input, "quit") || strings.EqualFold(input, "exit") {
			fmt.Println("Goodbye!")
			return
		}

		fmt.Print("\nAssistant: ")
		_, isDone, askErr := questionAgent.AskStream(ctx, thread, input, func(delta string) {
			fmt.Print(delta)
		})
		if askErr != nil {
			fmt.Println()
			fatalf("question agent: %v", askErr)
		}
		fmt.Println()
		done = isDone
	}

	if !done {
		fmt.Println("\nReached the conversation limit; generating a proposal from what we have.")
	}

	requirements := thread.RequirementsTranscript()
	fmt.Println("\nGenerating your proposal, this may take a moment...")

	result, err := workflow.Run(ctx, requirements)
	if runJournal != nil {
		rec := &journal.RunRecord{Requirements: requirements, Success: err == nil}
		if err != nil {
			rec.ErrorMessage = err.Error()
		} else {
			rec.BOMText = result.BOMText
			rec.ItemCount = len(result.Items)
			rec.TotalMonthly = result.Quote.TotalMonthly
			rec.Currency = result.Quote.Currency
			rec.Proposal = result.Proposal
		}
		if _, jerr := runJournal.WriteRun(rec); jerr != nil {
			logx.Errorf("journal write failed: %v", jerr)
		}
	}
	if err != nil {
		fatalf("proposal pipeline: %v", err)
	}

	fmt.Println("\n" + strings.Repeat("=", 72))
	fmt.Println(result.Proposal)
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("\nEstimated monthly total: %.2f %s across %d line items\n",
		result.Quote.TotalMonthly, result.Quote.Currency, len(result.Quote.Items))
}
