// cmd/init.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/repository"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new, empty Gitlet repository",
	Args:  exactOperands(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		return repository.CreateRepo(core.NewRepository(dir))
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
