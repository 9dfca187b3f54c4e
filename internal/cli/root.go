// Package cli implements the declutterctl command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yokitheyo/declutter/internal/client"
)

type rootOptions struct {
	server  string
	noColor bool
}

// NewRootCommand wires every subcommand.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "declutterctl",
		Short:         "Browse directories and clean up old files through a declutter server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	defaultServer := os.Getenv("DECLUTTER_SERVER")
	if defaultServer == "" {
		defaultServer = client.DefaultBaseURL
	}
	root.PersistentFlags().StringVar(&opts.server, "server", defaultServer, "declutter server base URL")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable ANSI colors")

	newClient := func() *client.Client { return client.New(opts.server) }

	root.AddCommand(
		newListCommand(newClient),
		newDrivesCommand(newClient),
		newDirsCommand(newClient),
		newTouchCommand(newClient),
		newRemoveCommand(newClient),
		newScanCommand(newClient),
		newCleanCommand(newClient),
		newHistoryCommand(newClient),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		reportError(stderr, err)
		return 1
	}
	return 0
}

func reportError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s %v\n", red("error:"), err)
	if client.IsConnection(err) {
		fmt.Fprintln(w, "Make sure the declutter server is running (see --server).")
	}
}
