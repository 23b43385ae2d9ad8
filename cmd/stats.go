package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/storage"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the recorded change events",
	Long:  "Prints per-change-type totals from the changes database: how many monsters and how many events.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := pathFlag(cmd, "changes-db", "changes.db")
		if dbPath == "" {
			return fmt.Errorf("no changes database configured; pass --changes-db or set changes.db")
		}

		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats(context.Background())
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			fmt.Println("No change events recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CHANGE TYPE\tMONSTERS\tEVENTS")
		var monsters, events int
		for _, s := range stats {
			fmt.Fprintf(w, "%s\t%d\t%d\n", s.ChangeType, s.MonsterCount, s.EventCount)
			monsters += s.MonsterCount
			events += s.EventCount
		}
		fmt.Fprintf(w, "TOTAL\t%d\t%d\n", monsters, events)
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().String("changes-db", "", "SQLite database recording change events")
}
