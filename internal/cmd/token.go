package cmd

import (
	"github.com/spf13/cobra"
)

func newTokenCmd(cli *CLI, options *Options) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:     "token",
		Aliases: []string{"get-tokens"},
		Short:   "Request a new access token and print it",
		Args:    NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cli, options)
			if err != nil {
				return err
			}

			t, err := s.tokens.RequestToken(cmd.Context(), save)
			if err != nil {
				return tokenError(err)
			}

			expires := t.ExpiresAt()

			cli.Output("Access Token: %s", t.AccessToken)
			cli.Output("Expires At: %d - %s (%s)",
				expires.Unix(),
				expires.In(s.location).Format("2006-01-02 15:04:05 MST"),
				HumanTime(expires, "never"))

			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Write the new token to the token cache")
	return cmd
}
