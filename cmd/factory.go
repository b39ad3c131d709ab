package cmd

import (
	"github.com/spf13/cobra"

	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/config"
)

// HandlerFunc is the signature shared by command handlers that operate on
// an existing repository.
type HandlerFunc func(repo *core.Repository, args []string) error

// NewRepoCommand creates a cobra.Command with standard repository
// handling: operand count is checked first, then the repository is
// discovered and its format validated before the handler runs.
func NewRepoCommand(use, short string, operands int, handler HandlerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  exactOperands(operands),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepository()
			if err != nil {
				return err
			}
			return handler(repo, args)
		},
	}
}

// openRepository locates the enclosing repository and validates its format.
func openRepository() (*core.Repository, error) {
	repo, err := core.FindRepository()
	if err != nil {
		return nil, core.NewUserError("Not in an initialized Gitlet directory.")
	}
	if err := config.Validate(repo); err != nil {
		return nil, err
	}
	return repo, nil
}

// exactOperands enforces an exact positional operand count.
func exactOperands(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return core.NewUserError("Incorrect operands.")
		}
		return nil
	}
}
