// Package cli is the terminal front end: a one-shot ask command and an
// interactive chat loop over the same agent.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/viratraj194/Finance-Agent/config"
	"github.com/viratraj194/Finance-Agent/internal/agent"
	"github.com/viratraj194/Finance-Agent/internal/llm"
	"github.com/viratraj194/Finance-Agent/internal/storage"
)

const version = "1.0.0"

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "finance-agent",
		Short: "Finance Agent - conversational Indian market assistant",
		Long: `Finance Agent answers free-text questions about Indian stocks:
live snapshots, comparisons, ranges, performance, technical indicators,
news events, Reddit sentiment, and composite IPO reports.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cfg)
		},
	}

	rootCmd.AddCommand(newAskCmd(cfg))
	rootCmd.AddCommand(newChatCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")

	return rootCmd
}

func newAskCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [QUESTION]",
		Short: "Answer a single question and exit",
		Long: `Answer one free-text market question and exit.
Example: finance-agent ask "compare reliance and tcs"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")

			a, closer, err := buildAgent(cfg)
			if err != nil {
				return err
			}
			defer closer()

			answer := a.Handle(cmd.Context(), question)
			fmt.Println(renderAnswer(answer))
			return nil
		},
	}
}

func newChatCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cfg)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Finance Agent v%s\n", version)
			fmt.Println("Conversational market assistant for Indian stocks")
		},
	}
}

// buildAgent wires the agent and, when history is enabled, the
// transcript store. The returned closer is always safe to call.
func buildAgent(cfg *config.Config) (*agent.Agent, func(), error) {
	completer, err := llm.NewClient(context.Background(), cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("language model setup: %w", err)
	}

	var rec agent.Recorder
	closer := func() {}

	if cfg.HistoryEnabled {
		store, err := storage.Open(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open transcript store: %w", err)
		}
		rec = store
		closer = func() { _ = store.Close() }
	}

	a := agent.New(cfg, completer, rec)
	a.SessionID = fmt.Sprintf("session-%d", time.Now().Unix())
	return a, closer, nil
}
