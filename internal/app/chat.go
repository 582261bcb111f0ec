package app

import (
	"context"
	"fmt"
	"os"
)

// ChatOptions configure the chat command.
type ChatOptions struct {
	Prompt string
	Token  string
}

// Chat sends a prompt to the local model and prints its reply. Requires a
// premium token.
func (a *App) Chat(ctx context.Context, opts ChatOptions) error {
	if err := a.requirePremium(opts.Token); err != nil {
		return err
	}

	client := a.newChatClient()
	reply, err := client.Generate(ctx, opts.Prompt)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, reply)
	return nil
}
