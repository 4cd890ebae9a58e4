package commands

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"sealchat/internal/domain"
)

// watch <partner>: stream new messages until interrupted.
func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <partner>",
		Short: "Stream new messages from a partner until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			conv, err := wire.Conversations.Resolve(cmd.Context(), sess, args[0])
			if err != nil {
				return fmt.Errorf("starting chat with %q: %w", args[0], err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			fmt.Printf("Watching conversation %s (Ctrl-C to stop)\n", conv.ID)
			return wire.Messages.Watch(ctx, sess, conv, func(m domain.DecryptedMessage) {
				who := args[0]
				if m.SenderID == sess.UserID {
					who = "me"
				}
				ts := time.Unix(m.CreatedUTC, 0).Format("15:04")
				fmt.Printf("[%s %s] %s\n", ts, who, m.Text)
			})
		},
	}
}
