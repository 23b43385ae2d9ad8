package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/simonboy77/osrsbox-enchanced-monsters/internal/utils"
	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/builder"
	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/catalog"
	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/diff"
	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/schema"
	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/storage"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build every monster record from the configured dumps",
	Long: `Builds one typed record per cache entry: wiki page lookup, versioned
infobox resolution, property normalization, drop table parsing, and a
change report against the prior published database. Records are
exported as one JSON file per monster id.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cachePath := pathFlag(cmd, "cache", "data.cache")
		pagesByIDPath := pathFlag(cmd, "pages-by-id", "data.pages-by-id")
		pagesByNamePath := pathFlag(cmd, "pages-by-name", "data.pages-by-name")
		itemsPath := pathFlag(cmd, "items", "data.items")
		priorPath := pathFlag(cmd, "prior", "data.prior")
		schemaPath := pathFlag(cmd, "schema", "data.schema")
		exportDir := pathFlag(cmd, "export-dir", "export.dir")
		changesDBPath := pathFlag(cmd, "changes-db", "changes.db")
		validate, _ := cmd.Flags().GetBool("validate")

		cache, err := catalog.LoadCache(cachePath)
		if err != nil {
			return err
		}
		items, err := catalog.LoadItems(itemsPath)
		if err != nil {
			return err
		}

		// The processed-by-id dump is optional; the raw by-name dump is the
		// fallback and at least one must load.
		var pagesByID *catalog.Pages
		if pagesByIDPath != "" {
			if pagesByID, err = catalog.LoadPages(pagesByIDPath); err != nil {
				utils.Log.Warnf("Could not load processed page dump %s: %s", pagesByIDPath, err)
				pagesByID = nil
			}
		}
		pagesByName, err := catalog.LoadPages(pagesByNamePath)
		if err != nil {
			if pagesByID == nil {
				return err
			}
			utils.Log.Warnf("Could not load raw page dump %s: %s", pagesByNamePath, err)
			pagesByName = nil
		}

		prior := catalog.EmptyPrior()
		if priorPath != "" {
			if loaded, err := catalog.LoadPrior(priorPath); err != nil {
				utils.Log.Warnf("No prior database at %s, every monster diffs as new: %s", priorPath, err)
			} else {
				prior = loaded
			}
		}

		var validator *schema.Validator
		if validate {
			if validator, err = schema.NewValidator(schemaPath); err != nil {
				return err
			}
		}

		var db *storage.DB
		if changesDBPath != "" {
			if db, err = storage.Open(changesDBPath); err != nil {
				return err
			}
			defer db.Close()
		}

		if exportDir != "" {
			if err := os.MkdirAll(exportDir, 0755); err != nil {
				return err
			}
		}

		ctx := context.Background()
		today := time.Now().UTC().Format("2006-01-02")
		var built, skipped, incomplete, added, changed int

		// One builder spans the whole batch so duplicate detection sees
		// every record built so far.
		b := builder.New(cache, pagesByID, pagesByName, items)
		for _, id := range cache.IDs() {
			m, err := b.Build(id)
			if err != nil {
				return err
			}
			if m == nil {
				skipped++
				continue
			}

			priorRecord, _ := prior.Get(id)
			report, err := diff.Compare(priorRecord, m)
			if err != nil {
				return err
			}

			switch {
			case report.New:
				m.LastUpdated = today
				added++
				utils.Log.Infof("New monster: %d %s", m.ID, m.Name)
			case report.Empty():
				if last, ok := priorRecord["last_updated"].(string); ok && last != "" {
					m.LastUpdated = last
				} else {
					m.LastUpdated = today
				}
			default:
				m.LastUpdated = today
				changed++
				utils.Log.Infof("Changed monster: %d %s", m.ID, m.Name)
				for _, property := range report.ChangedProperties {
					utils.Log.Infof("  property changed: %s", property)
				}
				for _, dc := range report.DropChanges {
					utils.Log.Infof("  drop changed: %s (%s)", dc.Drop, dc.Field)
				}
			}

			if m.Incomplete {
				incomplete++
			}

			if db != nil {
				if err := db.RecordReport(ctx, m.ID, m.Name, report); err != nil {
					return err
				}
			}
			if validator != nil {
				if err := validator.Validate(m); err != nil {
					utils.Log.Errorf("monster %d (%s) failed schema validation: %s", m.ID, m.Name, err)
				}
			}
			if exportDir != "" {
				if err := m.ExportJSON(true, exportDir); err != nil {
					return err
				}
			}
			built++
		}

		utils.Log.Infof("Built %d monsters: %d new, %d changed, %d incomplete, %d skipped",
			built, added, changed, incomplete, skipped)
		return nil
	},
}

// pathFlag resolves a path from its command flag, falling back to the
// viper config key.
func pathFlag(cmd *cobra.Command, flag, configKey string) string {
	if value, _ := cmd.Flags().GetString(flag); value != "" {
		return value
	}
	return viper.GetString(configKey)
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().String("cache", "", fmt.Sprintf("Monster cache dump (default from config key %q)", "data.cache"))
	buildCmd.Flags().String("pages-by-id", "", "Processed wiki page dump keyed by monster id")
	buildCmd.Flags().String("pages-by-name", "", "Raw wiki page dump keyed by page name")
	buildCmd.Flags().String("items", "", "Item catalog dump used to resolve drops")
	buildCmd.Flags().String("prior", "", "Previously published monster database to diff against")
	buildCmd.Flags().String("schema", "", "JSON Schema for finalized records")
	buildCmd.Flags().String("export-dir", "", "Directory for per-monster JSON exports")
	buildCmd.Flags().String("changes-db", "", "SQLite database recording change events (empty disables)")
	buildCmd.Flags().Bool("validate", true, "Validate every record against the schema")
}
