package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// send <partner> <message>: encrypt and send a message.
func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <partner> <message>",
		Short: "Encrypt and send a message to a partner",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			text := strings.TrimSpace(strings.Join(args[1:], " "))
			if text == "" {
				return fmt.Errorf("nothing to send")
			}

			conv, err := wire.Conversations.Resolve(cmd.Context(), sess, args[0])
			if err != nil {
				return fmt.Errorf("starting chat with %q: %w", args[0], err)
			}
			if _, err := wire.Messages.Send(cmd.Context(), sess, conv, text); err != nil {
				// The draft is untouched on failure; print it back so a
				// retry is a copy-paste away.
				return fmt.Errorf("send failed (your message %q was not delivered): %w", text, err)
			}
			fmt.Println("sent")
			return nil
		},
	}
}
