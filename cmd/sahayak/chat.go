package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sahayak-ai/sahayak/internal/agent"
	"github.com/sahayak-ai/sahayak/internal/catalog"
	"github.com/sahayak-ai/sahayak/internal/config"
	"github.com/sahayak-ai/sahayak/internal/eligibility"
	"github.com/sahayak-ai/sahayak/internal/llm"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive eligibility conversation",
	Long: `Chat runs the full conversation loop in the terminal. Each message you
type is one turn: facts are extracted, eligibility is re-scored and the
assistant replies with matches or follow-up questions. Type "exit" to
stop early.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schemes, err := catalog.Load(catalogPath(cmd))
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		provider, _ := cmd.Flags().GetString("provider")
		if provider == "" {
			provider = config.LLMProvider()
		}

		client, err := llm.NewClient(provider, keyForProvider(provider))
		if err != nil {
			return fmt.Errorf("initialize LLM client: %w", err)
		}

		logger := zap.NewNop()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger, _ = zap.NewDevelopment()
		}

		engine := eligibility.NewEngine(schemes,
			eligibility.WithProvisionalThreshold(config.EligibilityThreshold()))
		ctrl := agent.NewController(uuid.New(), client, engine, agent.ControllerConfig{
			MaxTurns:      config.MaxTurns(),
			TopSchemes:    config.TopSchemes(),
			HistoryWindow: config.HistoryWindow(),
		}, logger)

		fmt.Printf("sahayak ready (%d schemes, provider: %s). Tell me about yourself.\n", len(schemes), provider)

		scanner := bufio.NewScanner(os.Stdin)
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}
			if text == "exit" || text == "quit" {
				break
			}

			result := ctrl.ProcessTurn(ctx, text)
			fmt.Println(result.ReplyText)

			for _, scheme := range result.EligibleSchemes {
				fmt.Printf("  - %s (%.0f%% match)\n", scheme.Name, scheme.MatchScore)
			}
			for _, c := range result.NewContradictions {
				fmt.Printf("  ! you previously said %s was %v, now %v\n", c.Field, c.PreviousValue, c.NewValue)
			}

			if !result.ShouldContinue {
				break
			}
		}

		summary := ctrl.Summarize()
		fmt.Printf("\nConversation over after %d turn(s).\n", summary.TurnCount)
		return scanner.Err()
	},
}

func keyForProvider(provider string) string {
	switch provider {
	case "anthropic":
		return config.AnthropicAPIKey()
	case "cerebras":
		return config.CerebrasAPIKey()
	case "mock":
		return ""
	default:
		return config.OpenAIAPIKey()
	}
}

func init() {
	chatCmd.Flags().String("provider", "", "LLM provider (openai, anthropic, cerebras, mock)")
	chatCmd.Flags().Bool("verbose", false, "log turn internals")

	rootCmd.AddCommand(chatCmd)
}
