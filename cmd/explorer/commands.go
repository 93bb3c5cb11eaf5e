package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/couchcryptid/country-explorer/internal/domain"
	"github.com/couchcryptid/country-explorer/internal/state"
)

// User-facing messages for a fully exhausted top-level fetch.
const (
	msgListFailed   = "Failed to fetch countries. Please try again later."
	msgDetailFailed = "Failed to fetch country details. Please try again later."
)

// errReported marks an error whose message was already printed.
var errReported = errors.New("reported")

type countryResolver interface {
	FetchAll(ctx context.Context) []domain.RawCountry
	FetchByName(ctx context.Context, name string) []domain.RawCountry
}

type weatherResolver interface {
	ByCityOrCoords(ctx context.Context, city string, coords []float64) *domain.WeatherSnapshot
}

type newsResolver interface {
	TopHeadlines(ctx context.Context, code, name string) []domain.NewsItem
}

// explorer is everything the commands need, owned by main.
type explorer struct {
	countries countryResolver
	weather   weatherResolver
	news      newsResolver
	app       *state.App
}

var printer = message.NewPrinter(language.English)

func newRootCmd(e *explorer) *cobra.Command {
	root := &cobra.Command{
		Use:           "explorer",
		Short:         "Browse countries, weather and headlines",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(
		newListCmd(e),
		newShowCmd(e),
		newFavCmd(e),
		newFavsCmd(e),
		newThemeCmd(e),
	)
	return root
}

func newListCmd(e *explorer) *cobra.Command {
	var q domain.Query
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List countries with search, region filter, sort and paging",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records := domain.NormalizeAll(e.countries.FetchAll(cmd.Context()))
			if len(records) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), msgListFailed)
				return errReported
			}
			if _, err := e.app.Favorites.Migrate(records); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
			}

			page := domain.Apply(records, q)
			out := cmd.OutOrStdout()
			if len(page.Items) == 0 {
				fmt.Fprintln(out, "No countries match.")
				return nil
			}
			for _, c := range page.Items {
				writeRow(out, c, e.app.Favorites.IsFavorite(c.CCA3))
			}
			fmt.Fprintf(out, "\nPage %d of %d (%d countries)\n", page.Page, page.TotalPages, page.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Text, "q", "", "search by country or capital")
	cmd.Flags().StringVar(&q.Region, "region", domain.RegionAll, "region filter: "+strings.Join(domain.Regions, ", "))
	cmd.Flags().StringVar(&q.SortBy, "sort", domain.SortByName, "sort by name, population or area")
	cmd.Flags().IntVar(&q.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&q.PageSize, "page-size", domain.DefaultPageSize, "countries per page")
	return cmd
}

func newShowCmd(e *explorer) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show country details, weather and top news",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			matches := e.countries.FetchByName(ctx, args[0])
			if len(matches) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), msgDetailFailed)
				return errReported
			}
			c := domain.Normalize(matches[0])
			idx := domain.IndexByCCA3(domain.NormalizeAll(e.countries.FetchAll(ctx)))

			out := cmd.OutOrStdout()
			writeDetails(out, c, domain.BorderLinks(c, idx), e.app.Favorites.IsFavorite(c.CCA3))

			if c.Capital != "" || c.LatLng != nil {
				var coords []float64
				if c.LatLng != nil {
					coords = c.LatLng[:]
				}
				writeWeather(out, c.Capital, e.weather.ByCityOrCoords(ctx, c.Capital, coords))
			}
			if c.CCA2 != "" {
				writeNews(out, e.news.TopHeadlines(ctx, c.CCA2, c.Name))
			}
			return nil
		},
	}
}

func newFavCmd(e *explorer) *cobra.Command {
	return &cobra.Command{
		Use:   "fav <name>",
		Short: "Toggle a country in favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches := e.countries.FetchByName(cmd.Context(), args[0])
			if len(matches) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), msgDetailFailed)
				return errReported
			}
			c := domain.Normalize(matches[0])
			added, err := e.app.Favorites.Toggle(c)
			if err != nil {
				return err
			}
			verb := "Removed %s from favorites\n"
			if added {
				verb = "Added %s to favorites\n"
			}
			fmt.Fprintf(cmd.OutOrStdout(), verb, c.Name)
			return nil
		},
	}
}

func newFavsCmd(e *explorer) *cobra.Command {
	return &cobra.Command{
		Use:   "favs",
		Short: "List favorite countries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			favs := e.app.Favorites.List()
			out := cmd.OutOrStdout()
			if len(favs) == 0 {
				fmt.Fprintln(out, "No favorites yet.")
				return nil
			}
			for _, c := range favs {
				writeRow(out, c, true)
			}
			return nil
		},
	}
}

func newThemeCmd(e *explorer) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [toggle|light|dark]",
		Short:     "Show or change the theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"toggle", state.ThemeLight, state.ThemeDark},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				var err error
				if args[0] == "toggle" {
					_, err = e.app.Theme.Toggle()
				} else {
					err = e.app.Theme.Set(args[0])
				}
				if err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), e.app.Theme.Get())
			return nil
		},
	}
}

func writeRow(w io.Writer, c domain.CountryRecord, favorite bool) {
	mark := " "
	if favorite {
		mark = "*"
	}
	printer.Fprintf(w, "%s %-32s %-3s  %-20s %-9s %15d\n",
		mark, c.Name, c.CCA3, orDash(c.Capital), orDash(c.Region), int64(math.Round(c.Population)))
}

func writeDetails(w io.Writer, c domain.CountryRecord, borders []domain.BorderLink, favorite bool) {
	title := c.OfficialName
	if title == "" {
		title = c.Name
	}
	if favorite {
		title += " *"
	}
	fmt.Fprintln(w, title)
	fmt.Fprintf(w, "  Capital:    %s\n", orDash(c.Capital))
	fmt.Fprintf(w, "  Region:     %s\n", orDash(c.Region))
	printer.Fprintf(w, "  Population: %d\n", int64(math.Round(c.Population)))
	if c.Area != nil && *c.Area != 0 {
		printer.Fprintf(w, "  Area:       %v km²\n", *c.Area)
	} else {
		fmt.Fprintln(w, "  Area:       —")
	}
	fmt.Fprintf(w, "  Languages:  %s\n", orDash(strings.Join(c.Languages, ", ")))
	fmt.Fprintf(w, "  Currencies: %s\n", orDash(strings.Join(c.Currencies, ", ")))
	if len(borders) > 0 {
		names := make([]string, len(borders))
		for i, b := range borders {
			names[i] = b.Name
		}
		fmt.Fprintf(w, "  Borders:    %s\n", strings.Join(names, ", "))
	}
	if c.Flag != "" {
		fmt.Fprintf(w, "  Flag:       %s\n", c.Flag)
	}
}

func writeWeather(w io.Writer, capital string, snap *domain.WeatherSnapshot) {
	heading := "Current Weather"
	if capital != "" {
		heading += " in " + capital
	}
	fmt.Fprintln(w, "\n"+heading)
	if snap == nil {
		fmt.Fprintln(w, "  No weather data.")
		return
	}
	humidity := "—"
	if snap.Humidity != nil {
		humidity = fmt.Sprintf("%.0f", *snap.Humidity)
	}
	fmt.Fprintf(w, "  %.0f°C · %s\n", math.Round(snap.Temp), snap.Description)
	fmt.Fprintf(w, "  Humidity: %s%% · Wind: %v m/s\n", humidity, snap.Wind)
}

func writeNews(w io.Writer, items []domain.NewsItem) {
	fmt.Fprintln(w, "\nTop News")
	if len(items) == 0 {
		fmt.Fprintln(w, "  No news available.")
		return
	}
	if len(items) > domain.MaxNews {
		items = items[:domain.MaxNews]
	}
	for _, n := range items {
		fmt.Fprintf(w, "  - %s\n    %s\n", n.Title, n.URL)
	}
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
