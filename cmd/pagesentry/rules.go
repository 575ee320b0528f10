package pagesentry

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagesentry/pagesentry/internal/rules"
	"github.com/pagesentry/pagesentry/internal/validate"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List built-in detection rules",
		Run: func(_ *cobra.Command, _ []string) {
			for _, id := range rules.BuiltinIDs() {
				fmt.Println(id)
			}
		},
	}
	rootCmd.AddCommand(cmd)

	vcmd := &cobra.Command{
		Use:   "validators",
		Short: "List registered validators",
		Run: func(_ *cobra.Command, _ []string) {
			for _, id := range validate.IDs() {
				fmt.Println(id)
			}
		},
	}
	rootCmd.AddCommand(vcmd)
}
