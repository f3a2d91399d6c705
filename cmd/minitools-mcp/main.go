// Package main provides the minitools-mcp command: an MCP server exposing
// color, unit conversion, image compression and text tools over stdio, plus
// one-shot subcommands for the same tools.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ironsheep/minitools-mcp/internal/config"
	"github.com/ironsheep/minitools-mcp/internal/logging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Global flags
var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "minitools-mcp",
	Short: "MCP server for everyday color, unit, image and text tools",
	Long: `minitools-mcp serves small utility tools over the MCP protocol on stdin/stdout.

Run without a subcommand to start the server, or use a subcommand to run a
single tool from the shell.

Examples:
  minitools-mcp                                   # Start the MCP server
  minitools-mcp color "#4361ee" --palette         # Describe a color and its palette
  minitools-mcp convert 5 length kilometer mile   # Convert a value
  minitools-mcp compress in.png out.jpg --format jpeg --target-kb 100
  minitools-mcp analyze notes.txt                 # Text statistics

Settings come from minitools.yaml, a .env file and MINITOOLS_* environment
variables (for example MINITOOLS_LOG_LEVEL=debug).`,
	Args:          cobra.NoArgs,
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdin/stdout (the default)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "minitools-mcp %s\n", Version)
		fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default: minitools.yaml in . or the user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(colorCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(passwordCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}
}

// setup loads configuration and builds the stderr logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, logging.New(cfg.Log.Level), nil
}

// printJSON writes v as indented JSON to the command's output.
func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
