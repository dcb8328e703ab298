package history

import (
	"fmt"
	"io"
	"strings"

	dbpkg "github.com/dtnitsch/mastodon-wordcloud/pkg/db"
	"github.com/urfave/cli/v2"
)

func dbFlag() cli.Flag {
	return &cli.StringFlag{Name: "history_db", Usage: "history database path (default next to the binary)"}
}

// Command is the "history" command and its subcommands.
func Command() *cli.Command {
	return &cli.Command{
		Name:   "history",
		Usage:  "List word clouds recorded with --history",
		Action: RunsAction,
		Flags: []cli.Flag{
			dbFlag(),
			&cli.IntFlag{Name: "limit", Value: 20, Usage: "number of runs to list"},
		},
		Subcommands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Show a run and its top words",
				ArgsUsage: "[run_id]",
				Action:    ShowAction,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.IntFlag{Name: "top", Value: 25, Usage: "number of words to print (0 = all)"},
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a run",
				ArgsUsage: "<run_id>",
				Action:    DeleteAction,
				Flags:     []cli.Flag{dbFlag()},
			},
		},
	}
}

// RunsAction lists recorded runs, newest first.
func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("history_db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	return printRuns(c.App.Writer, database, c.Int("limit"))
}

func printRuns(w io.Writer, database *dbpkg.DB, limit int) error {
	runs, err := database.ListRuns(limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found")
		return nil
	}

	fmt.Fprintf(w, "%-6s %-20s %-24s %-8s %-6s %-8s %-20s\n",
		"ID", "Created", "Account", "Statuses", "Pages", "Words", "Output")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range runs {
		pages := fmt.Sprintf("%d", r.Pages)
		if r.Capped {
			pages += "*"
		}
		fmt.Fprintf(w, "%-6d %-20s %-24s %-8d %-6s %-8d %-20s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.AccountName,
			r.StatusesSeen,
			pages,
			r.WordCount,
			r.OutputPath,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d runs (* = stopped by --max_pages)\n", len(runs))
	fmt.Fprintf(w, "\nTip: Use 'toot-cloud history show <id>' to see its top words\n")
	return nil
}

// ShowAction prints one run and its top words. Without an ID the latest
// run is shown.
func ShowAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("history_db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}
	return printRun(c.App.Writer, database, runID, c.Int("top"))
}

func printRun(w io.Writer, database *dbpkg.DB, runID int64, top int) error {
	run, err := database.GetRun(runID)
	if err != nil {
		return err
	}
	words, err := database.RunWords(runID, top)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Run %d\n", run.RunID)
	fmt.Fprintf(w, "  Created:   %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Server:    %s\n", run.ServerURL)
	fmt.Fprintf(w, "  Account:   %s (id %s)\n", run.AccountName, run.AccountID)
	fmt.Fprintf(w, "  Statuses:  %d of %d reported, %d pages\n", run.StatusesSeen, run.StatusesCount, run.Pages)
	fmt.Fprintf(w, "  Stopwords: %d removed\n", run.StopwordsRemoved)
	fmt.Fprintf(w, "  Output:    %s\n", run.OutputPath)
	fmt.Fprintf(w, "\nTop %d words:\n", len(words))
	for i, wc := range words {
		fmt.Fprintf(w, "%d. %s: %d\n", i+1, wc.Word, wc.Count)
	}
	return nil
}

func DeleteAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("run ID required")
	}
	database, err := dbpkg.Open(c.String("history_db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}
	if err := database.DeleteRun(runID); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Deleted run %d\n", runID)
	return nil
}

// GetRunIDOrLatest returns the run ID from args, or the latest run if not provided
func GetRunIDOrLatest(c *cli.Context, database *dbpkg.DB) (int64, error) {
	if c.NArg() == 0 {
		runs, err := database.ListRuns(1)
		if err != nil {
			return 0, fmt.Errorf("failed to get latest run: %w", err)
		}
		if len(runs) == 0 {
			return 0, fmt.Errorf("no runs found. Run 'toot-cloud --history <server> <account> <token>' first")
		}
		return runs[0].RunID, nil
	}

	var runID int64
	if _, err := fmt.Sscanf(c.Args().First(), "%d", &runID); err != nil {
		return 0, fmt.Errorf("invalid run ID: %s", c.Args().First())
	}
	return runID, nil
}
