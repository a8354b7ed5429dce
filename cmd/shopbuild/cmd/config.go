package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/badno/shopbuild/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Initialize, view, and modify configuration settings.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file",
	Long:  `Create a new configuration file with default settings.`,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display all configuration settings.`,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long:  `Set a specific configuration value.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a configuration value",
	Long:  `Get a specific configuration value.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	header := color.New(color.FgCyan, color.Bold)
	success := color.New(color.FgGreen)

	header.Println("\n  INITIALIZING CONFIGURATION")
	fmt.Println("  " + strings.Repeat("─", 40))
	fmt.Println()

	if config.Exists() {
		configPath, _ := config.GetConfigPath()
		color.Yellow("  Configuration file already exists: %s", configPath)
		fmt.Println()
		return nil
	}

	if err := config.Init(); err != nil {
		color.Red("  Error: %v", err)
		return err
	}

	configPath, _ := config.GetConfigPath()
	success.Printf("  ✓ Created configuration file: %s\n", configPath)
	fmt.Println()

	color.Yellow("  Next steps:")
	fmt.Println("    1. Set your Gemini API key (optional, enables AI modes):")
	fmt.Println("       export GEMINI_API_KEY=your_key_here")
	fmt.Println()
	fmt.Println("    2. Customize settings:")
	fmt.Println("       shopbuild config set defaults.vendor YourBrandName")
	fmt.Println()

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	header := color.New(color.FgCyan, color.Bold)

	header.Println("\n  CURRENT CONFIGURATION")
	fmt.Println("  " + strings.Repeat("─", 40))
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		color.Red("  Error loading configuration: %v", err)
		return err
	}

	configPath, _ := config.GetConfigPath()
	if config.Exists() {
		color.Yellow("  Config file: %s\n\n", configPath)
	} else {
		color.Yellow("  Using default configuration (no config file)\n\n")
	}

	// Format as YAML
	data, _ := yaml.Marshal(cfg)
	fmt.Println("  " + strings.ReplaceAll(string(data), "\n", "\n  "))
	fmt.Println()

	// Show environment variable status
	header.Println("  ENVIRONMENT VARIABLES")
	fmt.Println("  " + strings.Repeat("─", 40))
	fmt.Println()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Variable", "Status"})
	table.SetBorder(false)
	table.SetHeaderColor(
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
	)

	status := color.RedString("not set")
	if os.Getenv(cfg.Generator.APIKeyEnv) != "" {
		status = color.GreenString("set")
	}
	table.Append([]string{"Generator API Key (" + cfg.Generator.APIKeyEnv + ")", status})

	table.Render()
	fmt.Println()

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	if err := config.Set(key, value); err != nil {
		color.Red("  Error: %v", err)
		return err
	}

	color.Green("  ✓ Set %s = %s", key, value)
	fmt.Println()
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	value, err := config.Get(key)
	if err != nil {
		color.Red("  Error: %v", err)
		return err
	}

	fmt.Printf("  %s = %s\n", key, value)
	fmt.Println()
	return nil
}
