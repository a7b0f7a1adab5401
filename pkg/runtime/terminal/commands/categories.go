package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/de-tools/diag-audit/pkg/models/domain"
)

func NewCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List supported resource types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range domain.CategoryNames() {
				predicates := domain.SupportedCategories[domain.ResourceTypeCategory(name)]
				descriptions := make([]string, 0, len(predicates))
				for _, p := range predicates {
					descriptions = append(descriptions, p.String())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", name, strings.Join(descriptions, "; "))
			}
			return nil
		},
	}
}

func joinCategories() string {
	return strings.Join(domain.CategoryNames(), ", ")
}
