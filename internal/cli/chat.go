package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/viratraj194/Finance-Agent/config"
)

// runChat drives the interactive loop: prompt, dispatch, render,
// repeat until the user exits.
func runChat(cfg *config.Config) error {
	a, closer, err := buildAgent(cfg)
	if err != nil {
		return err
	}
	defer closer()

	fmt.Println(renderTitle("Finance Agent v" + version))
	fmt.Println(renderHint("Ask about Indian stocks: price, compare, rsi, news, sentiment, ipo."))
	fmt.Println(renderHint("Type 'exit' to quit."))
	fmt.Println()

	ctx := context.Background()
	for {
		question, err := promptForQuestion()
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				fmt.Println(renderHint("Goodbye."))
				return nil
			}
			fmt.Println(renderError("Error reading input: " + err.Error()))
			continue
		}

		question = strings.TrimSpace(question)
		switch strings.ToLower(question) {
		case "":
			continue
		case "exit", "quit", "q":
			fmt.Println(renderHint("Goodbye."))
			return nil
		}

		fmt.Println(renderAnswer(a.Handle(ctx, question)))
		fmt.Println()
	}
}

func promptForQuestion() (string, error) {
	var question string
	prompt := &survey.Input{
		Message: "You:",
		Help:    "Free text, e.g. 'price of tcs' or 'should I apply for lenskart ipo'",
	}
	err := survey.AskOne(prompt, &question)
	return question, err
}
