// tetherbench times the tether handle types against raw pointer baselines.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rawbytedev/tether/pkg/ptrbench"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tetherbench",
	Short: "Benchmark driver for the tether handle types",
	Long: `tetherbench runs create/observe/destroy loops over the tether owning and
observing handles and over bare pointer baselines, across small, string,
and large-array payloads, and reports per-op wall time and allocations.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the configured scenarios",
	RunE:  runRun,
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the scenarios that would run",
	RunE:  runScenarios,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "scenario file (yaml); default is the built-in handle x payload cross product")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scenariosCmd)
}

func loadConfig() (ptrbench.Config, error) {
	if cfgFile == "" {
		return ptrbench.DefaultConfig(), nil
	}
	return ptrbench.LoadConfig(cfgFile)
}

func runScenarios(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Handle", "Payload", "Iterations")
	for _, s := range cfg.Scenarios {
		table.Append(s.Name, s.Handle, s.Payload, strconv.Itoa(s.Iterations))
	}
	table.Render()
	return nil
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rep, err := ptrbench.Run(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("run %s on %s/%s, started %s\n\n",
		rep.ID, rep.GoOS, rep.GoArch, rep.Started.Format("2006-01-02 15:04:05"))

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Scenario", "Iterations", "ns/op", "allocs/op", "Total")
	for _, r := range rep.Results {
		table.Append(
			r.Scenario.Name,
			strconv.Itoa(r.Scenario.Iterations),
			fmt.Sprintf("%.1f", r.NsPerOp),
			fmt.Sprintf("%.2f", r.AllocsPerOp),
			r.Elapsed.String(),
		)
	}
	table.Render()
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
