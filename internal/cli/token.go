package cli

import (
	"github.com/spf13/cobra"
)

var tokenUserName string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "管理進階功能 token",
}

var tokenAddCmd = &cobra.Command{
	Use:   "add <token>",
	Short: "新增 token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().TokenAdd(args[0], tokenUserName)
	},
}

var tokenRemoveCmd = &cobra.Command{
	Use:   "remove <token>",
	Short: "移除 token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().TokenRemove(args[0])
	},
}

var tokenListCmd = &cobra.Command{
	Use:   "list",
	Short: "列出所有 token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().TokenList()
	},
}

func init() {
	tokenAddCmd.Flags().StringVar(&tokenUserName, "user", "", "使用者名稱")

	tokenCmd.AddCommand(tokenAddCmd)
	tokenCmd.AddCommand(tokenRemoveCmd)
	tokenCmd.AddCommand(tokenListCmd)
}
