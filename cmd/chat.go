package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/talentcrew/internal/chatbot"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask the recruitment assistant about candidates, metrics and agents",
	Run: func(cmd *cobra.Command, _ []string) {
		chat(cmd)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringP("message", "m", "", "answer a single message and exit")
}

func chat(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	env, err := newEnv(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing environment", zap.Error(err))
	}
	defer env.Close()

	bot := chatbot.New(env.reporter(), env.writer, env.activity, logger)
	out := cmd.OutOrStdout()

	if message, _ := cmd.Flags().GetString("message"); strings.TrimSpace(message) != "" {
		fmt.Fprintln(out, bot.Reply(ctx, message))
		return
	}

	fmt.Fprintln(out, chatbot.Greeting)

	prompt := promptui.Prompt{Label: "You"}
	for {
		message, err := prompt.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return
		}
		if err != nil {
			logger.Fatal("reading message", zap.Error(err))
		}

		message = strings.TrimSpace(message)
		switch strings.ToLower(message) {
		case "":
			continue
		case "exit", "quit", "bye":
			return
		}

		fmt.Fprintln(out, bot.Reply(ctx, message))
	}
}
