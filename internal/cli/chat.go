package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"agriwatch/internal/app"
)

var chatToken string

var chatCmd = &cobra.Command{
	Use:   "chat <提示詞>",
	Short: "向本地模型提問 (需要 token)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.ChatOptions{
			Prompt: strings.Join(args, " "),
			Token:  chatToken,
		}
		return getApp().Chat(cmd.Context(), opts)
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatToken, "token", "", "進階功能 token")
}
