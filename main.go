package main

import (
	"fmt"
	"os"
	"strings"

	"postboard/service"
)

const CliVersion = "1.0.0"

// exit is swapped out by tests.
var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches os.Args and exits with the command's status.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help", "-h", "--help":
		printHelp()
	case "version":
		fmt.Printf("postboard version %s\n", CliVersion)
	default:
		if code := service.HandleCommand(append([]string{cmd}, os.Args[2:]...)); code != 0 {
			exit(code)
		}
	}
}

func printHelp() {
	helpText := `Usage: postboard <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve                          Run the posts API server.
  init                           Initialize a new empty database.
  clean [--force]                Remove the database.
  seed [file]                    Load posts and comments from a YAML fixture.
  backup [dir]                   Write a compressed backup of the badger database.
  restore <file> [--force]       Restore the badger database from a backup.

Environment:
  POSTBOARD_STORE.DRIVER         badger (default) or sqlite.
  POSTBOARD_SERVER.PORT          Listen port, 8080 by default.

Keys contain dots, so they are normally set in a .env file or with env(1).
`
	fmt.Println(helpText)
}
