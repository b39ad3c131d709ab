package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NahomAnteneh/gitlet/core"
)

var rootCmd = &cobra.Command{
	Use:   "gitlet",
	Short: "Gitlet is a miniature version-control system",
	Long: `Gitlet records snapshots of a working directory as immutable,
content-addressed commits, with branching and three-way merging. All state
lives under a .gitlet directory beneath the working directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return core.NewUserError("Please enter a command.")
		}
		return core.NewUserError("No command with that name exists.")
	},
}

// Execute runs one command. User-facing failures print their prescribed
// message to stdout and exit 0; internal errors exit nonzero.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var userErr *core.UserError
	if errors.As(err, &userErr) {
		fmt.Println(userErr.Message)
		return
	}

	fmt.Fprintf(os.Stderr, "gitlet: %v\n", err)
	os.Exit(1)
}
