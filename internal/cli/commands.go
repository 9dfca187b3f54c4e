package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yokitheyo/declutter/internal/client"
	"github.com/yokitheyo/declutter/internal/client/state"
	"github.com/yokitheyo/declutter/internal/model"
)

type clientFactory func() *client.Client

var (
	bold  = color.New(color.Bold).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	warn  = color.New(color.FgYellow).SprintFunc()
)

func newListCommand(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "ls <directory>",
		Short: "List the entries of a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := state.Reduce(state.State{}, state.FetchStarted{Directory: args[0]})
			files, err := newClient().ListFiles(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			s = state.Reduce(s, state.FetchSucceeded{Files: files})

			out := cmd.OutOrStdout()
			isDir := make([]bool, 0, len(s.Files))
			t := newTable(out, func(row int) bool { return row < len(isDir) && isDir[row] }, "NAME", "TYPE", "SIZE", "MODIFIED")
			for _, f := range s.Files {
				name := f.Name
				if f.Type == model.TypeDirectory {
					name += "/"
				}
				isDir = append(isDir, f.Type == model.TypeDirectory)
				t.Row(name, string(f.Type), humanize.IBytes(uint64(f.Size)),
					humanize.Time(time.Unix(f.ModifiedTime, 0)))
			}
			fmt.Fprintln(out, t.Render())
			fmt.Fprintf(out, "\n%s %d entries, %s\n", bold("Total:"), len(s.Files), humanize.IBytes(uint64(s.TotalSize)))
			return nil
		},
	}
}

func newDirsCommand(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "dirs <directory>",
		Short: "List the subdirectories of a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs, err := newClient().ListDirs(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			t := newTable(out, nil, "NAME", "PATH")
			for _, d := range dirs {
				t.Row(d.Name, d.Path)
			}
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}
}

func newDrivesCommand(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "drives",
		Short: "List the roots the server can browse from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			drives, err := newClient().Drives(cmd.Context())
			if err != nil {
				return err
			}
			for _, d := range drives {
				fmt.Fprintln(cmd.OutOrStdout(), cyan(d))
			}
			return nil
		},
	}
}

func newTouchCommand(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "touch <directory> <filename>",
		Short: "Create an empty file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := newClient().CreateFile(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", green("created"), path)
			return nil
		},
	}
}

func newRemoveCommand(newClient clientFactory) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <path>",
		Short: "Delete a single file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd, fmt.Sprintf("Delete %s?", args[0])) {
				fmt.Fprintln(cmd.OutOrStdout(), "aborted")
				return nil
			}
			if err := newClient().DeleteFile(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", green("deleted"), args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

type filterFlags struct {
	ext  string
	days int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ext, "ext", "", "file extension to match, e.g. .log")
	cmd.Flags().IntVar(&f.days, "days", 30, "only files not modified for this many days")
	_ = cmd.MarkFlagRequired("ext")
}

func newScanCommand(newClient clientFactory) *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Preview which files a cleanup would delete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			f, err := c.NewFilter(args[0], ff.ext, ff.days)
			if err != nil {
				return err
			}
			res, err := c.Scan(cmd.Context(), f)
			if err != nil {
				return err
			}
			printScan(cmd.OutOrStdout(), res)
			return nil
		},
	}
	ff.register(cmd)
	return cmd
}

// newCleanCommand scans, asks, then executes with the exact filter that was
// previewed.
func newCleanCommand(newClient clientFactory) *cobra.Command {
	var (
		ff  filterFlags
		yes bool
	)
	cmd := &cobra.Command{
		Use:   "clean <directory>",
		Short: "Delete files of one type older than a number of days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			out := cmd.OutOrStdout()
			f, err := c.NewFilter(args[0], ff.ext, ff.days)
			if err != nil {
				return err
			}

			s := state.Reduce(state.State{}, state.ModalOpened{})
			s = state.Reduce(s, state.ScanStarted{Filter: f})
			scan, err := c.Scan(cmd.Context(), f)
			if err != nil {
				return err
			}
			s = state.Reduce(s, state.ScanSucceeded{Result: *scan})
			printScan(out, scan)

			if !s.Cleanup.CanExecute() {
				return nil
			}
			prompt := fmt.Sprintf("Delete %d file(s), %s?", scan.Count, humanize.IBytes(uint64(scan.TotalSize)))
			if !yes && !confirm(cmd, prompt) {
				fmt.Fprintln(out, "aborted")
				return nil
			}

			s = state.Reduce(s, state.ExecuteStarted{})
			res, err := c.Cleanup(cmd.Context(), s.Cleanup.Filter)
			if err != nil {
				return err
			}
			s = state.Reduce(s, state.ExecuteSucceeded{Result: *res})

			msg := green(s.Cleanup.Result.Message)
			if s.Cleanup.Result.Failed > 0 {
				msg = warn(s.Cleanup.Result.Message)
			}
			fmt.Fprintf(out, "%s, freed %s\n", msg, humanize.IBytes(uint64(s.Cleanup.Result.TotalSize)))
			return nil
		},
	}
	ff.register(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newHistoryCommand(newClient clientFactory) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent cleanups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := newClient().History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No cleanups recorded.")
				return nil
			}
			t := newTable(out, nil, "WHEN", "DIRECTORY", "TYPE", "DELETED", "FAILED", "FREED")
			for _, r := range records {
				t.Row(humanize.Time(r.CreatedAt), r.Directory, r.Extension,
					humanize.Comma(int64(r.DeletedCount)), strconv.Itoa(r.FailedCount),
					humanize.IBytes(uint64(r.FreedBytes)))
			}
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of records to show")
	return cmd
}

func printScan(w io.Writer, res *model.ScanResponse) {
	fmt.Fprintln(w, res.Message)
	if res.Count == 0 {
		return
	}
	t := newTable(w, nil, "FILE")
	for _, name := range res.Files {
		t.Row(name)
	}
	if more := res.Count - len(res.Files); more > 0 {
		t.Row(fmt.Sprintf("... and %d more", more))
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%s %s\n", bold("Total:"), humanize.IBytes(uint64(res.TotalSize)))
}

func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
