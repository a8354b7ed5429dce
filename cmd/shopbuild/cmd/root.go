package cmd

import (
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shopbuild",
	Short: "Shopify Import Builder",
	Long: color.New(color.FgCyan, color.Bold).Sprint(`
     _                 _           _ _     _
 ___| |__   ___  _ __ | |__  _   _(_) | __| |
/ __| '_ \ / _ \| '_ \| '_ \| | | | | |/ _' |
\__ \ | | | (_) | |_) | |_) | |_| | | | (_| |
|___/_| |_|\___/| .__/|_.__/ \__,_|_|_|\__,_|
                |_|
`) + `
Shopify Import Builder - product CSV toolkit

Turn raw product tables (CSV or Excel) into Shopify-ready import
files: size×colour variant expansion, stable handles and SKUs,
inventory quantities, and optional AI descriptions and tags.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// .env is optional; missing file is fine
	_ = godotenv.Load()

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(quantitiesCmd)
	rootCmd.AddCommand(configCmd)
}
