package cmd

import (
	"errors"
	"strings"

	"github.com/spigell/talentcrew/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage credentials stored in the OS keychain",
}

var setGeminiKeyCmd = &cobra.Command{
	Use:   "set-gemini-key",
	Short: "Store the Gemini API key in the OS keychain",
	Run: func(cmd *cobra.Command, _ []string) {
		setGeminiKey(cmd)
	},
}

var deleteGeminiKeyCmd = &cobra.Command{
	Use:   "delete-gemini-key",
	Short: "Remove the Gemini API key from the OS keychain",
	Run: func(cmd *cobra.Command, _ []string) {
		deleteGeminiKey(cmd)
	},
}

func init() {
	rootCmd.AddCommand(secretCmd)
	secretCmd.AddCommand(setGeminiKeyCmd, deleteGeminiKeyCmd)

	secretCmd.PersistentFlags().String("account", "", "keychain account. Default is ai.gemini.keyring-account from the config.")
}

func keyringAccount(cmd *cobra.Command, config *Config) string {
	if account, _ := cmd.Flags().GetString("account"); strings.TrimSpace(account) != "" {
		return account
	}
	if config.AI != nil && config.AI.Gemini != nil && config.AI.Gemini.KeyringAccount != "" {
		return config.AI.Gemini.KeyringAccount
	}
	return defaultKeyringAccount
}

func setGeminiKey(cmd *cobra.Command) {
	logger, config := setup()
	account := keyringAccount(cmd, config)

	prompt := promptui.Prompt{
		Label: "Gemini API key",
		Mask:  '*',
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("key is empty")
			}
			return nil
		},
	}

	key, err := prompt.Run()
	if err != nil {
		logger.Info("exiting", zap.Error(err))
		return
	}

	if err := secrets.Store(account, key); err != nil {
		logger.Fatal("storing gemini api key", zap.Error(err))
	}

	logger.Info("gemini api key stored", zap.String("service", secrets.KeyringService), zap.String("account", account))
}

func deleteGeminiKey(cmd *cobra.Command) {
	logger, config := setup()
	account := keyringAccount(cmd, config)

	if err := secrets.Forget(account); err != nil {
		logger.Fatal("deleting gemini api key", zap.Error(err))
	}

	logger.Info("gemini api key removed", zap.String("service", secrets.KeyringService), zap.String("account", account))
}
