package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sealchat/internal/domain"
)

// register: publish your directory entry so partners can find you by
// username.
func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Publish your profile to the directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			if sess.Username == "" {
				return fmt.Errorf("--username required (or set username in config.yaml)")
			}
			profile := domain.Profile{ID: sess.UserID, Username: sess.Username}
			if err := wire.Backend.UpsertProfile(cmd.Context(), profile); err != nil {
				return fmt.Errorf("registering %q: %w", sess.Username, err)
			}
			fmt.Printf("Registered %s as %s\n", sess.UserID, sess.Username)
			return nil
		},
	}
}
