package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/varoOP/animedexdb/internal/app"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch one title and save it to the catalog",
	Long: `Fetch retrieves one title from AniList (and its MyAnimeList record when available),
normalizes it and saves it to the catalog. Episodes already attached to the title are kept.

With only --mal-id the record is built from MyAnimeList alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		anilistID, _ := cmd.Flags().GetInt("anilist-id")
		malID, _ := cmd.Flags().GetInt("mal-id")
		latest, _ := cmd.Flags().GetBool("latest")

		return withApp(func(a *app.App) error {
			rec, err := a.Fetch(cmd.Context(), app.FetchRequest{AniListID: anilistID, MALID: malID, Latest: latest})
			if err != nil {
				return fmt.Errorf("fetch failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d: %s\n", rec.ID, rec.Title.Resolve())
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import every title of a year",
	Long: `Import pages through all titles of a year and adds the ones not yet in the catalog.

Sources:
  - anilist: AniList titles of the season year (default)
  - mal: MyAnimeList titles that started airing in the year`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		year, _ := cmd.Flags().GetInt("year")

		return withApp(func(a *app.App) error {
			added, err := a.Import(cmd.Context(), source, year)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d titles from %s %d\n", added, source, year)
			return nil
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Remove a title from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", args[0], err)
		}

		return withApp(func(a *app.App) error {
			if err := a.Remove(cmd.Context(), id); err != nil {
				return fmt.Errorf("remove failed: %w", err)
			}
			return nil
		})
	},
}

var episodesCmd = &cobra.Command{
	Use:   "episodes",
	Short: "Apply the episodes master file to the catalog",
	Long: `Episodes copies the episode lists and latest flags of the episodes master
YAML file onto the matching catalog titles and exports the document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			applied, err := a.ApplyEpisodes(cmd.Context())
			if err != nil {
				return fmt.Errorf("apply episodes failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d titles\n", applied)
			return nil
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Recompute the home page sections of the catalog document",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			stats, err := a.Export(cmd.Context())
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d titles (%d watchable)\n", stats.TotalAnime, stats.Watchable)
			return nil
		})
	},
}

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Format the episodes master YAML file",
	Long: `Format rewrites the episodes master YAML file sorted by id
with consistent formatting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			return a.FormatEpisodes(cmd.Context())
		})
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the external payload cache",
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop cached payloads older than cache_ttl",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			n, err := a.PruneCache(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d cached payloads\n", n)
			return nil
		})
	},
}

func init() {
	fetchCmd.Flags().Int("anilist-id", 0, "AniList id of the title")
	fetchCmd.Flags().Int("mal-id", 0, "MyAnimeList id of the title (defaults to the one AniList reports)")
	fetchCmd.Flags().Bool("latest", false, "add the title to the latest episodes list")

	importCmd.Flags().String("source", app.SourceAniList, "source to import from: 'anilist' or 'mal'")
	importCmd.Flags().Int("year", 0, "year to import")
	importCmd.MarkFlagRequired("year")

	cacheCmd.AddCommand(cachePruneCmd)

	rootCmd.AddCommand(fetchCmd, importCmd, removeCmd, episodesCmd, exportCmd, formatCmd, cacheCmd)
}
