package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// open <partner>: resolve (or create) the conversation with a partner.
func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <partner>",
		Short: "Start or resume a conversation with a partner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			conv, err := wire.Conversations.Resolve(cmd.Context(), sess, args[0])
			if err != nil {
				return fmt.Errorf("starting chat with %q: %w", args[0], err)
			}
			fmt.Printf("Conversation %s ready\n", conv.ID)
			return nil
		},
	}
}
