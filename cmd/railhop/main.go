package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mobil-koeln/railhop/internal/api"
	"github.com/mobil-koeln/railhop/internal/booking"
	"github.com/mobil-koeln/railhop/internal/cache"
	"github.com/mobil-koeln/railhop/internal/config"
	"github.com/mobil-koeln/railhop/internal/httpapi"
	"github.com/mobil-koeln/railhop/internal/logging"
	"github.com/mobil-koeln/railhop/internal/models"
	"github.com/mobil-koeln/railhop/internal/output"
	"github.com/mobil-koeln/railhop/internal/search"
	"github.com/mobil-koeln/railhop/internal/tui"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "railhop",
	Short: "Search and book trains between Hamburg and Amsterdam",
	Long: `railhop searches direct and connecting trains between Hamburg Hbf
and Amsterdam Centraal and simulates booking them.

Live timetables come from the public DB journeys API. When the API is
unavailable, railhop answers with sample connections instead.

Quick Start:
  1. Launch TUI:               railhop (or railhop tui)
  2. One-way search:           railhop search --date 2025-06-10
  3. Round trip, 2 nights:     railhop search --date 2025-06-10 --nights 2
  4. Book a connection:        railhop book <connection_id> --first-name Anna ...
  5. Serve the JSON API:       railhop serve --addr :8080`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is provided, launch TUI
		if len(args) == 0 {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

// Global flags
var (
	flagConfig   string
	flagLogLevel string
	flagJSON     bool
	flagColor    string
	flagNoCache  bool
)

// Search flags
var (
	flagDate       string
	flagReturnDate string
	flagNights     int
	flagOneWay     bool
	flagSort       string
	flagShowIDs    bool
	flagRawJSON    bool
)

// Book flags
var (
	flagFirstName string
	flagLastName  string
	flagEmail     string
	flagPhone     string
)

// Serve flags
var (
	flagAddr        string
	flagCORSOrigins []string
)

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)

	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Disable response caching")

	searchCmd.Flags().StringVarP(&flagDate, "date", "d", "", "Departure date (YYYY-MM-DD)")
	searchCmd.Flags().StringVarP(&flagReturnDate, "return-date", "r", "", "Return date (YYYY-MM-DD)")
	searchCmd.Flags().IntVarP(&flagNights, "nights", "n", 0, "Overnight stays before the return trip")
	searchCmd.Flags().BoolVar(&flagOneWay, "oneway", false, "Search the outbound direction only")
	searchCmd.Flags().StringVarP(&flagSort, "sort", "s", string(models.SortDeparture), "Sort by: departure, price, duration, changes")
	searchCmd.Flags().BoolVar(&flagShowIDs, "show-ids", false, "Show connection IDs (use with 'railhop book <id>')")
	searchCmd.Flags().BoolVar(&flagRawJSON, "raw-json", false, "Output the raw outbound API response")

	bookCmd.Flags().StringVar(&flagFirstName, "first-name", "", "Passenger first name (required)")
	bookCmd.Flags().StringVar(&flagLastName, "last-name", "", "Passenger last name (required)")
	bookCmd.Flags().StringVar(&flagEmail, "email", "", "Passenger email (required)")
	bookCmd.Flags().StringVar(&flagPhone, "phone", "", "Passenger phone")

	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().StringSliceVar(&flagCORSOrigins, "cors-origin", nil, "Allowed browser origins for the JSON API")
}

// app holds the services shared by all commands
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *cache.Store
	client  *api.Client
	search  *search.Service
	booking *booking.Service
}

// newApp loads configuration and wires the services together. A quiet app
// logs nothing unless --log-level is given.
func newApp(quiet bool) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	logger := zap.NewNop()
	if !quiet || flagLogLevel != "" {
		logger, err = logging.New(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
	}

	connectionsTTL := cfg.Cache.ConnectionsTTL
	resultTTL := cfg.Cache.ConnectionsTTL
	if flagNoCache {
		connectionsTTL = 0
		resultTTL = 0
	}

	store := cache.New()
	client, err := api.NewClient(
		api.WithStore(store),
		api.WithBaseURL(cfg.Upstream.BaseURL),
		api.WithTimeout(cfg.Upstream.Timeout),
		api.WithRateLimit(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window),
		api.WithConnectionsTTL(connectionsTTL),
		api.WithLogger(logger.Named("api")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		client: client,
		search: search.NewService(client, store,
			search.WithResultTTL(resultTTL),
			search.WithFallbackDelay(cfg.Search.FallbackDelay),
			search.WithLogger(logger.Named("search")),
		),
		booking: booking.NewService(
			booking.WithDelay(cfg.Booking.Delay),
			booking.WithLogger(logger.Named("booking")),
		),
	}, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM. The
// returned cancel func also releases the signal handler.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := output.SetupSignalHandler()
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		output.StopSignalHandler(sigChan)
		cancel()
	}
}

// getColorMode returns the color mode based on flag
func getColorMode() output.ColorMode {
	return output.ParseColorMode(flagColor)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search trains from Hamburg to Amsterdam",
	Long: `Search trains from Hamburg Hbf to Amsterdam Centraal and, for round
trips, back again.

A round trip needs a return date or a number of overnight stays; the
return date is then the departure date plus the stays.

Examples:
  railhop search --date 2025-06-10 --oneway
  railhop search --date 2025-06-10 --return-date 2025-06-14
  railhop search --date 2025-06-10 --nights 2 --sort price
  railhop search --date 2025-06-10 --oneway --show-ids
  railhop search --date 2025-06-10 --oneway --raw-json`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

// searchParamsFromFlags builds validated search parameters from the flags
func searchParamsFromFlags() (models.SearchParams, error) {
	params := models.SearchParams{
		From:     models.CityHamburg,
		To:       models.CityAmsterdam,
		Date:     strings.TrimSpace(flagDate),
		TripType: models.TripRoundTrip,
	}
	if flagOneWay {
		params.TripType = models.TripOneWay
	} else {
		params.ReturnDate = strings.TrimSpace(flagReturnDate)
		params.OvernightStays = flagNights
	}
	return params, params.Validate()
}

func runSearch(cmd *cobra.Command, args []string) error {
	params, err := searchParamsFromFlags()
	if err != nil {
		return err
	}
	sortKey, err := models.ParseSortKey(flagSort)
	if err != nil {
		return err
	}

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	ctx, cancel := signalContext()
	defer cancel()

	out := cmd.OutOrStdout()

	if flagRawJSON {
		raw, err := a.client.GetJourneysRaw(ctx,
			models.Stations[models.CityHamburg].EVA,
			models.Stations[models.CityAmsterdam].EVA,
			params.Date, api.DefaultDepartureTime)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(raw))
		return err
	}

	result := a.search.Search(ctx, params)

	if flagJSON {
		result.Outbound = models.SortBy(result.Outbound, sortKey)
		if result.Return != nil {
			result.Return = models.SortBy(result.Return, sortKey)
		}
		return writeJSON(out, result)
	}

	output.RenderSearchResult(out, result, output.TableOptions{
		Colors:  output.NewColors(getColorMode()),
		Sort:    sortKey,
		ShowIDs: flagShowIDs,
	})
	return nil
}

var bookCmd = &cobra.Command{
	Use:   "book <connection_id>",
	Short: "Book a connection",
	Long: `Book a connection found with 'railhop search --show-ids'.

Bookings are simulated: no ticket is issued and nothing is charged.

Example:
  railhop book conn-1-2025-06-10 --first-name Anna --last-name Schmidt \
    --email anna@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runBook,
}

func runBook(cmd *cobra.Command, args []string) error {
	connectionID := strings.TrimSpace(args[0])
	if connectionID == "" {
		return models.NewValidationError("connectionId", "field is required")
	}

	details := models.PassengerDetails{
		FirstName: strings.TrimSpace(flagFirstName),
		LastName:  strings.TrimSpace(flagLastName),
		Email:     strings.TrimSpace(flagEmail),
		Phone:     strings.TrimSpace(flagPhone),
	}
	if err := details.Validate(); err != nil {
		return err
	}

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	ctx, cancel := signalContext()
	defer cancel()

	b, err := a.booking.Book(ctx, connectionID, details)
	if err != nil {
		return err
	}

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), b)
	}

	output.RenderBooking(cmd.OutOrStdout(), b, output.TableOptions{
		Colors: output.NewColors(getColorMode()),
	})
	return nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	Long: `Serve search and booking over a JSON HTTP API.

Routes:
  GET    /health            Liveness check
  GET    /metrics           Prometheus metrics
  POST   /api/search        Search trains
  POST   /api/bookings      Book a connection
  GET    /api/cache/stats   Cache entry count
  DELETE /api/cache         Clear cache and rate limit state

Example:
  railhop serve --addr :8080 --cors-origin http://localhost:3000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	addr := a.cfg.Server.Addr
	if flagAddr != "" {
		addr = flagAddr
	}

	srv := httpapi.NewServer(a.search, a.booking, a.store,
		httpapi.WithLogger(a.logger.Named("http")),
		httpapi.WithAllowedOrigins(flagCORSOrigins...),
	)

	ctx, cancel := signalContext()
	defer cancel()

	return httpapi.ListenAndServe(ctx, addr, srv.Handler(), a.logger)
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive full-screen TUI",
	Long: `Launch an interactive full-screen terminal UI for searching and
booking trains.

Keyboard:
  Tab          Next field / switch outbound and return
  j/k or arrows  Navigate lists
  Space        Toggle one-way / round trip
  s            Cycle sort order
  Enter        Search / book / confirm
  Esc          Go back
  q            Quit`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Log lines on stderr would tear the alternate screen
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	model := tui.New(a.search, a.booking)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
