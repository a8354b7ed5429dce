package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/badno/shopbuild/internal/config"
	"github.com/badno/shopbuild/internal/enrich"
	"github.com/badno/shopbuild/internal/loader"
	"github.com/badno/shopbuild/internal/output"
	"github.com/badno/shopbuild/internal/output/file"
	"github.com/badno/shopbuild/internal/pipeline"
	"github.com/badno/shopbuild/internal/state"
	"github.com/badno/shopbuild/internal/textgen"
	"github.com/badno/shopbuild/pkg/models"
)

var (
	buildInput      string
	buildOutputPath string
	buildMode       string
	buildVendor     string
	buildDefaultQty int
	buildBulkQty    int
	buildLimit      int
	buildDest       string
	buildDryRun     bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a Shopify import file",
	Long: `Run the full pipeline on a product file: enrich descriptions, expand
size×colour variants, assign handles and SKUs, resolve inventory
quantities, and write the Shopify import CSV.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildInput, "input", "i", "", "Product file to process (.csv or .xlsx)")
	buildCmd.Flags().StringVarP(&buildOutputPath, "output", "o", "", "Output file path (default: timestamped file in output dir)")
	buildCmd.Flags().StringVar(&buildMode, "mode", "", "Enrichment mode (template, simple, full)")
	buildCmd.Flags().StringVar(&buildVendor, "vendor", "", "Vendor name for all output rows")
	buildCmd.Flags().IntVar(&buildDefaultQty, "default-qty", -1, "Default quantity per variant")
	buildCmd.Flags().IntVar(&buildBulkQty, "bulk-qty", -1, "Set this quantity on every variant, superseding overrides")
	buildCmd.Flags().IntVar(&buildLimit, "limit", 0, "Maximum products to process (0 = all)")
	buildCmd.Flags().StringVar(&buildDest, "dest", "csv", "Output destination (csv, json)")
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "Preview without writing the output file")
	buildCmd.MarkFlagRequired("input")
}

func runBuild(cmd *cobra.Command, args []string) error {
	header := color.New(color.FgCyan, color.Bold)
	success := color.New(color.FgGreen)

	header.Println("\n  BUILDING SHOPIFY IMPORT")
	fmt.Println("  " + strings.Repeat("─", 50))
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		color.Yellow("  Warning: Could not load config, using defaults")
		cfg = config.DefaultConfig()
	}
	applyBuildDefaults(cmd, cfg)

	mode, err := enrich.ParseMode(buildMode)
	if err != nil {
		color.Red("  Error: %v", err)
		return err
	}

	// Load input; a decode error stops the run with no output
	table, err := loader.LoadFile(buildInput)
	if err != nil {
		color.Red("  Error loading %s: %v", buildInput, err)
		return err
	}
	if len(table.Rows) == 0 {
		color.Yellow("  No product rows found in %s", buildInput)
		return nil
	}

	// Session state: quantity overrides survive between runs against the
	// same input file and are dropped wholesale for a new one
	store := state.NewStore(cfg.Session.StateFile)
	if err := store.Load(); err != nil {
		color.Yellow("  Warning: Could not load session state: %v", err)
	}
	if store.BindSource(buildInput) {
		color.Yellow("  New input file: cleared stale quantity overrides")
	}

	color.Yellow("  Found %d products in %s\n", len(table.Rows), buildInput)
	color.Yellow("  Mode: %s\n", mode)
	if buildDryRun {
		color.Yellow("  Mode: DRY RUN (no file will be written)\n")
	}
	fmt.Println()

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel) // warnings are shown from the result instead

	client := newGenerator(cfg, mode)

	bar := progressbar.NewOptions(len(table.Rows),
		progressbar.OptionSetDescription("  Processing products"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.GreenString("█"),
			SaucerHead:    color.GreenString("█"),
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	opts := pipeline.Options{
		Mode:       mode,
		Vendor:     buildVendor,
		DefaultQty: buildDefaultQty,
		Limit:      buildLimit,
		Overrides:  store.Overrides(),
		Progress: func(index, total int, title string) {
			bar.Add(1)
		},
	}
	if buildBulkQty >= 0 {
		opts.BulkMode = true
		opts.BulkQty = buildBulkQty
	}

	result, err := pipeline.New(client, log).Run(ctx, table, opts)
	if err != nil {
		fmt.Println()
		color.Red("  Error: %v", err)
		return err
	}

	fmt.Println()
	fmt.Println()

	showWarnings(result.Warnings)
	showBuildSummary(result)

	exportResult, err := exportRows(ctx, cfg, result.Rows)
	if err != nil {
		color.Red("  Error: %v", err)
		return err
	}

	if buildDryRun {
		color.Yellow("  Dry run complete. No file written.")
	} else {
		success.Printf("  ✓ %s\n", exportResult.Details)
	}

	store.AddHistory("build", len(result.Rows),
		fmt.Sprintf("Built %d variant rows from %d products (%s mode)", len(result.Rows), result.Products, mode))
	if err := store.Save(); err != nil {
		color.Yellow("  Warning: Could not save session state: %v", err)
	}
	fmt.Println()

	return nil
}

// applyBuildDefaults fills unset flags from the config file.
func applyBuildDefaults(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("mode") {
		buildMode = cfg.Defaults.Mode
	}
	if !cmd.Flags().Changed("vendor") {
		buildVendor = cfg.Defaults.Vendor
	}
	if !cmd.Flags().Changed("default-qty") {
		buildDefaultQty = cfg.Defaults.DefaultQty
	}
	if !cmd.Flags().Changed("bulk-qty") && cfg.Defaults.BulkQty > 0 {
		buildBulkQty = cfg.Defaults.BulkQty
	}
}

// newGenerator picks the text-generation client for the run. Template mode
// never calls the collaborator, and a missing API key degrades instead of
// failing the run.
func newGenerator(cfg *config.Config, mode enrich.Mode) textgen.Client {
	if mode == enrich.ModeTemplate {
		return textgen.Disabled{}
	}

	client, err := textgen.NewGemini(textgen.GeminiConfig{
		APIKeyEnv: cfg.Generator.APIKeyEnv,
		Model:     cfg.Generator.Model,
		BaseURL:   cfg.Generator.BaseURL,
		Timeout:   time.Duration(cfg.Generator.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		color.Yellow("  Warning: %v", err)
		color.Yellow("  Descriptions will fall back to the original text with empty tags")
		fmt.Println()
		return textgen.Disabled{}
	}
	return client
}

func showWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}

	color.Yellow("  %d products degraded during enrichment:", len(warnings))
	shown := len(warnings)
	if shown > 5 {
		shown = 5
	}
	for _, w := range warnings[:shown] {
		color.Yellow("   - %s", w)
	}
	if len(warnings) > shown {
		color.Yellow("   ... and %d more", len(warnings)-shown)
	}
	fmt.Println()
}

func showBuildSummary(result *pipeline.Result) {
	color.Yellow("  Variants: %d   Products: %d   Handles: %d   Total inventory: %d\n\n",
		len(result.Rows), result.Products, result.Handles, result.TotalQty)

	// Per-handle inventory summary, like the review step before download
	type productSummary struct {
		handle   string
		title    string
		variants int
		totalQty int
		price    string
	}

	var order []string
	byHandle := make(map[string]*productSummary)
	for _, row := range result.Rows {
		s, ok := byHandle[row.Handle]
		if !ok {
			s = &productSummary{handle: row.Handle, title: row.Title, price: row.Price}
			byHandle[row.Handle] = s
			order = append(order, row.Handle)
		}
		s.variants++
		s.totalQty += row.InventoryQty
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Handle", "Title", "Variants", "Total Qty", "Price"})
	table.SetBorder(false)
	table.SetHeaderColor(
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
	)

	displayCount := len(order)
	if displayCount > 20 {
		displayCount = 20
	}
	for _, h := range order[:displayCount] {
		s := byHandle[h]
		table.Append([]string{s.handle, truncate(s.title, 30), fmt.Sprintf("%d", s.variants), fmt.Sprintf("%d", s.totalQty), s.price})
	}
	if len(order) > displayCount {
		table.Append([]string{"...", fmt.Sprintf("and %d more", len(order)-displayCount), "", "", ""})
	}

	table.Render()
	fmt.Println()
}

func exportRows(ctx context.Context, cfg *config.Config, rows []models.OutputRow) (*output.ExportResult, error) {
	registry := output.NewRegistry()
	registry.Register(file.NewCSVAdapter(file.CSVConfig{OutputDir: cfg.Output.OutputDir}))
	registry.Register(file.NewJSONAdapter(file.JSONConfig{OutputDir: cfg.Output.OutputDir, Pretty: cfg.Output.Pretty}))

	adapter, err := registry.Get(buildDest)
	if err != nil {
		return nil, err
	}
	defer adapter.Close()

	format := output.FormatShopify
	if buildDest == file.JSONAdapterName {
		format = output.FormatJSON
	}

	return adapter.ExportRows(ctx, rows, output.ExportOptions{
		Format:     format,
		OutputPath: buildOutputPath,
		DryRun:     buildDryRun,
	})
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
