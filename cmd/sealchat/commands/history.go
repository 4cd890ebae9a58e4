package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// history <partner>: list the conversation decrypted, oldest first.
func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <partner>",
		Short: "List your conversation with a partner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			conv, err := wire.Conversations.Resolve(cmd.Context(), sess, args[0])
			if err != nil {
				return fmt.Errorf("starting chat with %q: %w", args[0], err)
			}
			msgs, err := wire.Messages.History(cmd.Context(), sess, conv)
			if err != nil {
				return err
			}
			for _, m := range msgs {
				who := args[0]
				if m.SenderID == sess.UserID {
					who = "me"
				}
				ts := time.Unix(m.CreatedUTC, 0).Format("15:04")
				fmt.Printf("[%s %s] %s\n", ts, who, m.Text)
			}
			return nil
		},
	}
}
