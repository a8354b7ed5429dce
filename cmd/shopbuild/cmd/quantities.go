package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/badno/shopbuild/internal/config"
	"github.com/badno/shopbuild/internal/quantity"
	"github.com/badno/shopbuild/internal/state"
)

var quantitiesCmd = &cobra.Command{
	Use:   "quantities",
	Short: "Manage per-variant quantity overrides",
	Long: `Set, list, and clear per-variant inventory quantity overrides for the
current session. Overrides are keyed by "size|colour|title" and applied
on the next build of the same input file.`,
}

var quantitiesSetCmd = &cobra.Command{
	Use:   "set [size|colour|title] [qty]",
	Short: "Set the quantity for one variant",
	Long:  `Record an explicit inventory quantity for one size|colour|title variant.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runQuantitiesSet,
}

var quantitiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded overrides",
	Long:  `Show all per-variant quantity overrides in the current session.`,
	RunE:  runQuantitiesList,
}

var quantitiesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all overrides",
	Long:  `Remove every per-variant quantity override from the current session.`,
	RunE:  runQuantitiesClear,
}

func init() {
	quantitiesCmd.AddCommand(quantitiesSetCmd)
	quantitiesCmd.AddCommand(quantitiesListCmd)
	quantitiesCmd.AddCommand(quantitiesClearCmd)
}

func openSession() (*state.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	store := state.NewStore(cfg.Session.StateFile)
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}

func runQuantitiesSet(cmd *cobra.Command, args []string) error {
	success := color.New(color.FgGreen)

	key, err := quantity.ParseKey(args[0])
	if err != nil {
		color.Red("  Error: %v", err)
		return err
	}

	qty, err := strconv.Atoi(args[1])
	if err != nil || qty < 0 {
		err = fmt.Errorf("invalid quantity %q (want integer >= 0)", args[1])
		color.Red("  Error: %v", err)
		return err
	}

	store, err := openSession()
	if err != nil {
		color.Red("  Error loading session: %v", err)
		return err
	}

	store.SetOverride(key, qty)
	store.AddHistory("quantities", 1, fmt.Sprintf("Set %s to %d", key, qty))
	if err := store.Save(); err != nil {
		color.Red("  Error saving session: %v", err)
		return err
	}

	success.Printf("  ✓ %s → %d\n", key, qty)
	return nil
}

func runQuantitiesList(cmd *cobra.Command, args []string) error {
	header := color.New(color.FgCyan, color.Bold)

	header.Println("\n  QUANTITY OVERRIDES")
	fmt.Println("  " + strings.Repeat("─", 50))
	fmt.Println()

	store, err := openSession()
	if err != nil {
		color.Red("  Error loading session: %v", err)
		return err
	}

	overrides := store.Overrides()
	if len(overrides) == 0 {
		color.Yellow("  No overrides recorded.")
		fmt.Println()
		return nil
	}

	if src := store.SourceFile(); src != "" {
		color.Yellow("  Bound to input file: %s\n\n", src)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Size", "Color", "Title", "Qty"})
	table.SetBorder(false)
	table.SetHeaderColor(
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
	)

	for key, qty := range overrides {
		size := key.Size
		if size == "" {
			size = "N/A"
		}
		colour := key.Colour
		if colour == "" {
			colour = "N/A"
		}
		table.Append([]string{size, colour, truncate(key.Title, 30), strconv.Itoa(qty)})
	}

	table.Render()
	fmt.Println()

	return nil
}

func runQuantitiesClear(cmd *cobra.Command, args []string) error {
	success := color.New(color.FgGreen)

	store, err := openSession()
	if err != nil {
		color.Red("  Error loading session: %v", err)
		return err
	}

	n := store.ClearOverrides()
	store.AddHistory("quantities", n, fmt.Sprintf("Cleared %d overrides", n))
	if err := store.Save(); err != nil {
		color.Red("  Error saving session: %v", err)
		return err
	}

	success.Printf("  ✓ Cleared %d overrides\n", n)
	return nil
}
