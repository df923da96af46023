// ABOUTME: Entry point for the mobile directory client
// ABOUTME: Routes to the TUI, MCP server or directory CLI commands based on arguments
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/harperreed/mobiledir/cli"
	"github.com/harperreed/mobiledir/client"
	"github.com/harperreed/mobiledir/config"
	"github.com/harperreed/mobiledir/logging"
)

const version = "0.1.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	backendURL := flag.String("backend-url", "", "Backend base URL (default: $MOBILEDIR_BACKEND_URL or http://localhost:5000)")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	// Handle version flag
	if *showVersion {
		fmt.Printf("mobiledir version %s\n", version)
		os.Exit(0)
	}

	// Get remaining args after flags
	args := flag.Args()

	// If no command specified, show usage
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.SetBackendURL(*backendURL)

	logger, closer, err := logging.New(cfg)
	if err != nil {
		log.Printf("Logging disabled: %v", err)
		logger = zap.NewNop()
	} else {
		defer func() { _ = closer.Close() }()
	}

	dir := client.New(cfg.BackendURL,
		client.WithTimeout(cfg.HTTPTimeout),
		client.WithLogger(logger),
	)

	// Route to top-level command
	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "tui":
		if err := cli.TUICommand(dir, logger); err != nil {
			log.Fatalf("TUI failed: %v", err)
		}

	case "mcp":
		if err := cli.MCPCommand(dir, logger, version); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "dir":
		if len(commandArgs) == 0 {
			fmt.Println("Error: dir requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		dirCommand := commandArgs[0]
		dirArgs := commandArgs[1:]

		switch dirCommand {
		case "states":
			err = cli.StatesCommand(dir, dirArgs)
		case "add":
			err = cli.AddCommand(dir, dirArgs)
		case "search":
			err = cli.SearchCommand(dir, dirArgs)
		case "delete":
			err = cli.DeleteCommand(dir, dirArgs)
		case "copy":
			err = cli.CopyCommand(dirArgs)
		case "health":
			err = cli.HealthCommand(dir, dirArgs)
		default:
			fmt.Printf("Unknown dir command: %s\n\n", dirCommand)
			printUsage()
			os.Exit(1)
		}
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`mobiledir v%s - Mobile number directory client

USAGE:
  mobiledir [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --backend-url <url>    Backend base URL (default: http://localhost:5000)

COMMANDS:
  tui                    Interactive directory
  mcp                    Start MCP server for Claude Desktop
  dir                    Directory commands

TUI KEYS:
  tab / shift+tab        Move between fields
  ctrl+t                 Switch between structured and free-text add
  ctrl+a                 Show all numbers
  ←/→                    Choose a state
  c                      Copy the selected number
  d                      Delete the selected number
  ctrl+c                 Quit

DIR COMMANDS:
  mobiledir dir states      List states

  mobiledir dir add         Add a number
    --number <number>         10-digit mobile number starting with 6-9
    --place <place>           Place
    --district <district>     District
    --state <state>           State
    --text <text>             Number and place as one line (instead of the fields above)

  mobiledir dir search      Search numbers
    --place <place>           Filter by place
    --district <district>     Filter by district
    --state <state>           Filter by state
    --all                     List every number

  mobiledir dir delete [--yes] <number>  Delete a number
    Note: flags must come before the number

  mobiledir dir copy <number>   Copy a number to the clipboard

  mobiledir dir health      Check that the backend is reachable

ENVIRONMENT:
  MOBILEDIR_BACKEND_URL     Backend base URL (VITE_BACKEND_URL is also read)
  MOBILEDIR_HTTP_TIMEOUT    Request timeout, e.g. 10s (default: none)
  MOBILEDIR_LOG_LEVEL       debug, info, warn, error (default: info)
  MOBILEDIR_LOG_FORMAT      text or json (default: text)
  MOBILEDIR_LOG_FILE        Log file (default: ~/.local/state/mobiledir/mobiledir.log)

EXAMPLES:
  # Add a number
  mobiledir dir add --number 9876543210 --place Gandhipuram --district Coimbatore --state "Tamil Nadu"

  # Add from one line
  mobiledir dir add --text "9876543210 Gandhipuram Coimbatore"

  # Find every number in Kerala
  mobiledir dir search --state Kerala

`, version)
}
