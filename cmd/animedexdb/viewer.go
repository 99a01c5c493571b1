package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/varoOP/animedexdb/internal/app"
)

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Print the home page sections",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			home, err := a.Home(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, home)
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the detail page of a title",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")

		return withApp(func(a *app.App) error {
			d, err := a.Show(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, d)
		})
	},
}

var episodeCmd = &cobra.Command{
	Use:   "episode",
	Short: "Print the player page of an episode",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		ep, _ := cmd.Flags().GetString("ep")

		return withApp(func(a *app.App) error {
			p, err := a.Episode(cmd.Context(), id, ep)
			if err != nil {
				return err
			}
			return printJSON(cmd, p)
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the catalog",
	Long: `Search resolves a query the way the search page does: a section name, "top-100",
"#" or a single letter for the A-Z index, or free text of at least 3 characters.
--genre lists the titles tagged with a genre instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		q, _ := cmd.Flags().GetString("query")
		suggest, _ := cmd.Flags().GetBool("suggest")
		genre, _ := cmd.Flags().GetString("genre")

		return withApp(func(a *app.App) error {
			if genre != "" {
				p, err := a.Genre(cmd.Context(), genre)
				if err != nil {
					return err
				}
				return printJSON(cmd, p)
			}

			if suggest {
				s, err := a.Suggest(cmd.Context(), q)
				if err != nil {
					return err
				}
				return printJSON(cmd, s)
			}

			p, err := a.Search(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printJSON(cmd, p)
		})
	},
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Print the detail page of a random title",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			d, err := a.Random(cmd.Context(), rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
			if err != nil {
				return err
			}
			return printJSON(cmd, d)
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog sorted by title",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			entries, err := a.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range entries {
				marker := " "
				if e.Latest {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %8d  %-60s %4d eps\n", marker, e.ID, e.Title, e.Episodes)
			}
			return nil
		})
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the viewer queries as a JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			return a.Serve(cmd.Context())
		})
	},
}

func init() {
	showCmd.Flags().String("id", "", "id of the title")
	episodeCmd.Flags().String("id", "", "id of the title")
	episodeCmd.Flags().String("ep", "", "episode number")
	searchCmd.Flags().String("query", "", "search query")
	searchCmd.Flags().String("genre", "", "list the titles tagged with this genre")
	searchCmd.Flags().Bool("suggest", false, "print inline suggestions instead of the result page")
	serveCmd.Flags().String("listen-addr", ":8080", "address the API listens on")
	viper.BindPFlag("listen_addr", serveCmd.Flags().Lookup("listen-addr"))

	rootCmd.AddCommand(homeCmd, showCmd, episodeCmd, searchCmd, randomCmd, listCmd, serveCmd)
}
