package cli

import (
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "啟動監控服務, 定時檢查預警規則",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Watch(cmd.Context())
	},
}
