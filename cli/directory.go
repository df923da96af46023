// ABOUTME: Directory CLI commands
// ABOUTME: Human-friendly commands for listing states and adding, searching, copying and deleting numbers
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/harperreed/mobiledir/client"
	"github.com/harperreed/mobiledir/compose"
	"github.com/harperreed/mobiledir/models"
)

// Package-level hooks so tests can capture output and fake the terminal.
var (
	stdout            io.Writer = os.Stdout
	stdin             io.Reader = os.Stdin
	stdinIsTerminal             = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	clipboardWriteAll           = clipboard.WriteAll
)

// errMessage turns err into the same text the TUI would show.
func errMessage(err error, fallback string) error {
	return errors.New(client.UserMessage(err, fallback))
}

// StatesCommand prints the state list, falling back to the built-in list.
func StatesCommand(dir *client.Client, args []string) error {
	fs := flag.NewFlagSet("states", flag.ExitOnError)
	_ = fs.Parse(args)

	for _, s := range dir.States(context.Background()) {
		_, _ = fmt.Fprintln(stdout, s)
	}
	return nil
}

// AddCommand adds a number, either from four fields or one free-text line.
func AddCommand(dir *client.Client, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	number := fs.String("number", "", "10-digit mobile number starting with 6-9")
	place := fs.String("place", "", "Place (e.g., Gandhipuram)")
	district := fs.String("district", "", "District (e.g., Coimbatore)")
	state := fs.String("state", "", "State")
	text := fs.String("text", "", "Number and place in one line, parsed by the backend")
	_ = fs.Parse(args)

	var (
		req models.AddRequest
		err error
	)
	if *text != "" {
		if *number != "" || *place != "" || *district != "" || *state != "" {
			return fmt.Errorf("--text cannot be combined with --number, --place, --district or --state")
		}
		req, err = compose.FreeText(*text)
	} else {
		req, err = compose.Entry(*number, *place, *district, *state)
	}
	if err != nil {
		return err
	}

	result, err := dir.Add(context.Background(), req)
	if err != nil {
		return errMessage(err, models.MsgAddFailed)
	}

	_, _ = fmt.Fprintf(stdout, "✓ %s\n", models.MsgAdded)
	if result.Entry != nil {
		_, _ = fmt.Fprintf(stdout, "  %s\n", result.Entry.Label())
	}
	return nil
}

// SearchCommand lists numbers matching the given filters. With no filters,
// or with --all, every number is listed.
func SearchCommand(dir *client.Client, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	place := fs.String("place", "", "Filter by place")
	district := fs.String("district", "", "Filter by district")
	state := fs.String("state", "", "Filter by state")
	all := fs.Bool("all", false, "Ignore filters and list every number")
	_ = fs.Parse(args)

	filter := models.SearchFilter{Place: *place, District: *district, State: *state}
	if *all {
		filter = models.SearchFilter{}
	}

	contacts, err := dir.Search(context.Background(), filter)
	if err != nil {
		return errMessage(err, models.MsgSearchFailed)
	}

	if len(contacts) == 0 {
		_, _ = fmt.Fprintln(stdout, models.MsgNoResults)
		return nil
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NUMBER\tPLACE\tDISTRICT\tSTATE")
	_, _ = fmt.Fprintln(w, "------\t-----\t--------\t-----")
	for _, c := range contacts {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Number, c.Place, c.District, c.State)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(stdout, "\nTotal: %d number(s)\n", len(contacts))
	return nil
}

// DeleteCommand deletes a number after confirmation.
func DeleteCommand(dir *client.Client, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	_ = fs.Parse(args)

	// First positional arg is the number
	if len(fs.Args()) < 1 {
		return fmt.Errorf("number is required")
	}
	number := fs.Args()[0]

	if !*yes {
		confirmed, err := confirm(fmt.Sprintf("Delete %s? This cannot be undone. [y/N]: ", number))
		if err != nil {
			return err
		}
		if !confirmed {
			_, _ = fmt.Fprintln(stdout, "Cancelled")
			return nil
		}
	}

	if err := dir.Delete(context.Background(), number); err != nil {
		return errMessage(err, models.MsgDeleteFailed)
	}

	_, _ = fmt.Fprintf(stdout, "✓ %s %s\n", models.MsgDeleted, number)
	return nil
}

// CopyCommand copies a number to the system clipboard.
func CopyCommand(args []string) error {
	fs := flag.NewFlagSet("copy", flag.ExitOnError)
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("number is required")
	}
	number := fs.Args()[0]

	if err := clipboardWriteAll(number); err != nil {
		return fmt.Errorf("%s: %w", models.MsgCopyFailed, err)
	}

	_, _ = fmt.Fprintf(stdout, "✓ %s %s\n", models.MsgCopied, number)
	return nil
}

// HealthCommand checks that the backend is reachable.
func HealthCommand(dir *client.Client, args []string) error {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	_ = fs.Parse(args)

	status, err := dir.Health(context.Background())
	if err != nil {
		return fmt.Errorf("backend %s unhealthy: %w", dir.BaseURL(), err)
	}

	_, _ = fmt.Fprintf(stdout, "✓ Backend %s: %s\n", dir.BaseURL(), status)
	return nil
}

func confirm(prompt string) (bool, error) {
	if !stdinIsTerminal() {
		return false, fmt.Errorf("refusing to delete without confirmation; pass --yes when not on a terminal")
	}

	_, _ = fmt.Fprint(stdout, prompt)
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
