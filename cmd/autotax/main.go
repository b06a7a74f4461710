package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/dealdesk/autotax/internal/calculation"
	"github.com/dealdesk/autotax/internal/config"
	"github.com/dealdesk/autotax/internal/output"
	"github.com/dealdesk/autotax/internal/rates"
	"github.com/dealdesk/autotax/internal/rules"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "autotax %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

var rootCmd = &cobra.Command{
	Use:   "autotax",
	Short: "Multi-jurisdiction vehicle tax calculator",
	Long:  "Sales, lease, and special-scheme vehicle tax calculation for all US titling jurisdictions",
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [deal-file]",
	Short: "Calculate tax for a deal described in a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		verbose, _ := cmd.Flags().GetBool("verbose")

		parser := config.NewInputParser()
		dealFile, err := parser.LoadFromFile(args[0])
		if err != nil {
			return err
		}

		registry, err := rules.NewRegistry()
		if err != nil {
			return fmt.Errorf("rule table failed integrity check: %w", err)
		}
		engine := calculation.NewEngine(registry, rates.NewResolver(dealFile.Provider()))
		if verbose {
			engine.SetLogger(simpleCLILogger{})
		}

		result, err := engine.Calculate(dealFile.Deal)
		if err != nil {
			return fmt.Errorf("tax calculation failed: %w", err)
		}
		return output.NewReportGenerator(os.Stdout).GenerateReport(result, format)
	},
}

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "List all supported jurisdiction codes",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := rules.NewRegistry()
		if err != nil {
			return err
		}
		for _, code := range registry.StateCodes() {
			rule, _ := registry.GetRulesForState(code)
			fmt.Printf("%s  %-22s %s\n", code, rule.Name, rule.Scheme.DisplayName())
		}
		return nil
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules [state]",
	Short: "Show the tax ruleset for a jurisdiction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := rules.NewRegistry()
		if err != nil {
			return err
		}
		summary, err := registry.RuleSummary(args[0])
		if err != nil {
			return err
		}
		for _, row := range summary {
			fmt.Printf("%-22s %s\n", row[0]+":", row[1])
		}
		return nil
	},
}

func main() {
	calculateCmd.Flags().String("format", "console", "Output format: console, json, or csv")
	calculateCmd.Flags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(statesCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
