package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pagecomposer/internal/middleware"
)

var hashTokenCmd = &cobra.Command{
	Use:   "hash-token [token]",
	Short: "Print the ADMIN_TOKEN_HASH value for an API token",
	Long: `Hash an admin API token with bcrypt. Without an argument the token is
read from the first line of standard input, which keeps it out of the
shell history.

Examples:
  composer hash-token s3cret
  printf '%s' "$TOKEN" | composer hash-token`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var token string
		if len(args) == 1 {
			token = args[0]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read token from stdin: %w", err)
			}
			token = strings.TrimRight(line, "\r\n")
		}

		hash, err := middleware.HashToken(token)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}
