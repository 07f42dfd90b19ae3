package main

import (
	"fmt"
	"log"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/qiuyun/cipai-meter/internal/cipai"
	"github.com/qiuyun/cipai-meter/internal/config"
	"github.com/qiuyun/cipai-meter/internal/meter"
	"github.com/qiuyun/cipai-meter/internal/render"
	"github.com/qiuyun/cipai-meter/internal/sourcedata"
	"github.com/qiuyun/cipai-meter/internal/store"
)

var (
	configPath string
	color      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cipaictl",
		Short: "Cipai meter matcher",
		Long:  "Load cipai templates and rhyme dictionaries, match passages against them, and cache the results.",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config.yaml (default: built-in defaults)")
	rootCmd.PersistentFlags().BoolVar(&color, "color", false, "Colorize terminal output")

	rootCmd.AddCommand(loadCmd(), showCmd(), matchCmd(), rankCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

func openStore(cfg *config.Config) (*store.DB, *store.Repository, error) {
	db, err := store.Open(cfg.Store.Path, cfg.Store.MaxOpenConns, cfg.Store.MaxIdleConns)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate store: %w", err)
	}
	return db, store.NewRepository(db), nil
}

func loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Parse rhyme dictionary and cipai source files into the sqlite cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, repo, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			log.Printf("Parsing rhyme dictionary from %s...", cfg.Data.RhymeDir)
			dict, err := sourcedata.LoadRhymeDir(cfg.Data.RhymeDir)
			if err != nil {
				return fmt.Errorf("load rhyme sources: %w", err)
			}
			records, chars := dict.Entries()
			if err := repo.SaveRhymeDict(records, chars); err != nil {
				return fmt.Errorf("cache rhyme dict: %w", err)
			}

			log.Printf("Parsing cipai templates from %s...", cfg.Data.CipaiDir)
			templates, err := sourcedata.LoadCipaiDir(cfg.Data.CipaiDir)
			if err != nil {
				return fmt.Errorf("load cipai sources: %w", err)
			}
			if err := repo.SaveTemplates(templates, nil); err != nil {
				return fmt.Errorf("cache templates: %w", err)
			}

			log.Printf("Cached %d rhyme records, %d cipai templates", dict.RecordCount(), len(templates))
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <template-name>",
		Short: "Display a cipai template's tone pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, repo, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			matches, err := repo.GetTemplateByName(args[0])
			if err != nil {
				return fmt.Errorf("load templates: %w", err)
			}
			if len(matches) == 0 {
				return fmt.Errorf("no template named %q", args[0])
			}
			for _, tpl := range matches {
				fmt.Println(render.DisplayTemplate(tpl, color))
			}
			return nil
		},
	}
}

func matchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <template-name> <text>",
		Short: "Score a passage against one named cipai template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, repo, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			dict, err := repo.LoadRhymeDict()
			if err != nil {
				return fmt.Errorf("load rhyme dict: %w", err)
			}
			matches, err := repo.GetTemplateByName(args[0])
			if err != nil {
				return fmt.Errorf("load templates: %w", err)
			}
			if len(matches) == 0 {
				return fmt.Errorf("no template named %q", args[0])
			}

			for _, tpl := range matches {
				result := meter.MatchMeter(dict, args[1], tpl)
				fmt.Println(render.DisplayResult(result, color))
			}
			return nil
		},
	}
}

func rankCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "rank <text>",
		Short: "Rank every cached cipai template against a passage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, repo, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			dict, err := repo.LoadRhymeDict()
			if err != nil {
				return fmt.Errorf("load rhyme dict: %w", err)
			}
			templates, err := repo.LoadTemplates()
			if err != nil {
				return fmt.Errorf("load templates: %w", err)
			}

			ranked := meter.BestMatch(dict, templates, args[0])
			if limit > 0 && limit < len(ranked) {
				ranked = ranked[:limit]
			}

			printRankTable(ranked)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of ranked templates to print (0 = all)")
	return cmd
}

func printRankTable(ranked []meter.TemplateMatch) {
	rows := [][]string{{"Rank", "Template", "Score"}}
	for i, m := range ranked {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			templateLabel(m.Template),
			fmt.Sprintf("%.2f%%", m.Result.Score*100),
		})
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.Header(rows[0])
	_ = table.Bulk(rows[1:])
	_ = table.Render()
}

func templateLabel(tpl *cipai.Template) string {
	if len(tpl.Names) == 0 {
		return "(unnamed)"
	}
	return tpl.Names[0]
}
