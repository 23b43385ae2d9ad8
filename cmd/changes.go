package cmd

import (
	"context"
	"fmt"

	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/storage"

	"github.com/spf13/cobra"
)

var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "Show recent monster change events",
	Long:  "Lists the most recent change events recorded in the changes database by build runs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := pathFlag(cmd, "changes-db", "changes.db")
		if dbPath == "" {
			return fmt.Errorf("no changes database configured; pass --changes-db or set changes.db")
		}
		limit, _ := cmd.Flags().GetInt("limit")

		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		events, err := db.ListRecentChanges(context.Background(), limit)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("No change events recorded.")
			return nil
		}

		for _, e := range events {
			when := e.OccurredAt.Format("2006-01-02 15:04:05")
			switch e.ChangeType {
			case "new":
				fmt.Printf("%s  new          %d %s\n", when, e.MonsterID, e.Name)
			case "changed":
				fmt.Printf("%s  changed      %d %s: %s\n", when, e.MonsterID, e.Name, e.Property)
			case "drop-changed":
				fmt.Printf("%s  drop-changed %d %s: %s %s -> %s\n", when, e.MonsterID, e.Name, e.Property, e.OldValue, e.NewValue)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(changesCmd)
	changesCmd.Flags().String("changes-db", "", "SQLite database recording change events")
	changesCmd.Flags().IntP("limit", "n", 50, "Maximum number of events to show")
}
