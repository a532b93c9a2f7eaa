package commands

import (
	"github.com/anonto42/quillpost/internal/models"
	"github.com/spf13/cobra"
)

// categoriesCmd prints the category tags posts may use
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the known post categories",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range models.Categories {
			cmd.Println(c)
		}
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
