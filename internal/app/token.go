package app

import (
	"fmt"
	"os"
	"text/tabwriter"
)

// TokenAdd registers a premium token.
func (a *App) TokenAdd(tok, userName string) error {
	tokens, err := a.openTokens()
	if err != nil {
		return err
	}
	if err := tokens.Add(tok, userName); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "已新增 token (%s)\n", userName)
	return nil
}

// TokenRemove deletes a premium token.
func (a *App) TokenRemove(tok string) error {
	tokens, err := a.openTokens()
	if err != nil {
		return err
	}
	if err := tokens.Remove(tok); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "已移除 token")
	return nil
}

// TokenList prints every registered token.
func (a *App) TokenList() error {
	tokens, err := a.openTokens()
	if err != nil {
		return err
	}

	entries := tokens.List()
	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "尚無 token")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Token\t使用者\t建立時間")
	for _, e := range entries {
		fmt.Fprintf(writer, "%s\t%s\t%s\n",
			e.Token, e.UserName, e.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return writer.Flush()
}
