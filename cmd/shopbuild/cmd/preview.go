package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/badno/shopbuild/internal/expand"
	"github.com/badno/shopbuild/internal/loader"
	"github.com/badno/shopbuild/pkg/models"
)

var previewInput string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview a product file before building",
	Long: `Load a product file and show what a build would produce: product and
estimated variant counts, and a per-column completeness analysis.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewInput, "input", "i", "", "Product file to inspect (.csv or .xlsx)")
	previewCmd.MarkFlagRequired("input")
}

func runPreview(cmd *cobra.Command, args []string) error {
	header := color.New(color.FgCyan, color.Bold)

	header.Println("\n  PREVIEWING PRODUCT FILE")
	fmt.Println("  " + strings.Repeat("─", 50))
	fmt.Println()

	table, err := loader.LoadFile(previewInput)
	if err != nil {
		color.Red("  Error loading %s: %v", previewInput, err)
		return err
	}

	variants := 0
	active := 0
	for _, row := range table.Rows {
		variants += expand.Count(row)
		if strings.EqualFold(row.Get(models.ColPublished), "active") {
			active++
		}
	}

	color.Yellow("  Products: %d   Columns: %d   Est. variants: %d   Active: %d\n\n",
		len(table.Rows), len(table.Headers), variants, active)

	missing := missingRequiredColumns(table)
	if len(missing) > 0 {
		color.Yellow("  Missing columns (will default to empty): %s\n\n", strings.Join(missing, ", "))
	}

	analysis := tablewriter.NewWriter(os.Stdout)
	analysis.SetHeader([]string{"Column", "Non-Empty", "Sample Value"})
	analysis.SetBorder(false)
	analysis.SetHeaderColor(
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
	)

	for _, col := range table.Headers {
		if col == "" {
			continue
		}
		nonEmpty := 0
		sample := ""
		for _, row := range table.Rows {
			if v := row.Get(col); v != "" {
				nonEmpty++
				if sample == "" {
					sample = v
				}
			}
		}
		analysis.Append([]string{col, fmt.Sprintf("%d/%d", nonEmpty, len(table.Rows)), truncate(sample, 40)})
	}

	analysis.Render()
	fmt.Println()

	return nil
}

// missingRequiredColumns lists the essential input columns the file does
// not carry.
func missingRequiredColumns(t *loader.Table) []string {
	required := []string{
		models.ColTitle,
		models.ColDescription,
		models.ColSize,
		models.ColColour,
		models.ColProductCode,
	}

	var missing []string
	for _, col := range required {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	return missing
}
