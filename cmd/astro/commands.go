package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"astrology_backend/internal/app/di"
	"astrology_backend/internal/feature/chart/domain/astro"
	"astrology_backend/internal/feature/chart/domain/entity"
	"astrology_backend/internal/feature/chart/usecase"
	synastryusecase "astrology_backend/internal/feature/synastry/usecase"
	"astrology_backend/internal/platform/config"
	"astrology_backend/internal/platform/ephemeris/analytic"
)

// env holds what PersistentPreRunE resolves for the subcommands.
type env struct {
	cfg  *config.Config
	eph  usecase.Ephemeris
	calc *usecase.Calculator
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "astro",
		Short:         "Astrology chart and compatibility calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			configFile, _ := cmd.Flags().GetString("config")
			if configFile != "" {
				e.cfg, err = config.LoadFromFile(configFile)
			} else {
				e.cfg, err = config.Load()
			}
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if level, _ := cmd.Flags().GetString("log-level"); level != "" {
				e.cfg.Logging.Level = level
			}
			// stdout は JSON 出力専用
			slog.SetDefault(e.cfg.Logging.NewLoggerTo(cmd.ErrOrStderr()))

			if ayanamsa, _ := cmd.Flags().GetString("ayanamsa"); ayanamsa != "" {
				e.cfg.Ephemeris.Ayanamsa = ayanamsa
			}
			// CLI ではキャッシュを使わない
			e.eph, err = di.NewEphemeris(e.cfg.Ephemeris, nil, 0)
			if err != nil {
				return err
			}
			e.calc = usecase.NewCalculator(e.eph, usecase.ResolverConfig{Ayanamsa: e.cfg.Ephemeris.Ayanamsa})
			return nil
		},
	}

	root.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().String("ayanamsa", "",
		"sidereal ayanamsa ("+strings.Join(analytic.Ayanamsas(), ", ")+")")

	root.AddCommand(
		natalCmd(e),
		solarReturnCmd(e),
		lunarReturnCmd(e),
		moonPhaseCmd(e),
		synastryCmd(e),
	)
	return root
}

// --- Natal Command ---

func natalCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "natal",
		Short: "Calculate a natal chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := birthFromFlags(cmd)
			if err != nil {
				return err
			}
			chart, err := e.calc.CalculateNatalChart(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd, chart)
		},
	}
	addBirthFlags(cmd)
	return cmd
}

// --- Return Commands ---

func solarReturnCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solar-return",
		Short: "Find the solar return for a year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := birthFromFlags(cmd)
			if err != nil {
				return err
			}
			year, _ := cmd.Flags().GetInt("year")
			if year == 0 {
				year = time.Now().UTC().Year()
			}
			ret, err := e.calc.CalculateSolarReturn(cmd.Context(), usecase.SolarReturnInput{
				Natal:    in,
				Year:     year,
				Location: returnLocation(cmd),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, ret)
		},
	}
	addBirthFlags(cmd)
	addReturnLocationFlags(cmd)
	cmd.Flags().Int("year", 0, "return year (default: current year)")
	return cmd
}

func lunarReturnCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lunar-return",
		Short: "Find the first lunar return on or after a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := birthFromFlags(cmd)
			if err != nil {
				return err
			}
			fromDate, _ := cmd.Flags().GetString("from")
			tz, _ := cmd.Flags().GetString("tz")
			from := time.Now().UTC()
			if fromDate != "" {
				from, err = astro.ParseInstant(fromDate, "00:00", tz)
				if err != nil {
					return err
				}
			}
			ret, err := e.calc.CalculateLunarReturn(cmd.Context(), usecase.LunarReturnInput{
				Natal:    in,
				From:     from.UTC(),
				Location: returnLocation(cmd),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, ret)
		},
	}
	addBirthFlags(cmd)
	addReturnLocationFlags(cmd)
	cmd.Flags().String("from", "", "search start date YYYY-MM-DD (default: now)")
	return cmd
}

// --- Moon Phase Command ---

func moonPhaseCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moon-phase",
		Short: "Show the moon phase at an instant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			clock, _ := cmd.Flags().GetString("time")
			tz, _ := cmd.Flags().GetString("tz")

			instant := time.Now().UTC()
			if date != "" {
				t, err := astro.ParseInstant(date, clock, tz)
				if err != nil {
					return err
				}
				instant = t.UTC()
			}
			jd, err := astro.ToJulianDay(instant)
			if err != nil {
				return err
			}

			resolver := usecase.NewPositionResolver(e.eph, usecase.ResolverConfig{Ayanamsa: e.cfg.Ephemeris.Ayanamsa})
			sun, err := resolver.Longitude(cmd.Context(), entity.Sun, jd, entity.Tropical)
			if err != nil {
				return err
			}
			moon, err := resolver.Longitude(cmd.Context(), entity.Moon, jd, entity.Tropical)
			if err != nil {
				return err
			}
			return printJSON(cmd, struct {
				Instant time.Time        `json:"instant"`
				Phase   entity.MoonPhase `json:"phase"`
			}{instant, astro.MoonPhaseOf(sun, moon)})
		},
	}
	cmd.Flags().String("date", "", "date YYYY-MM-DD (default: now)")
	cmd.Flags().String("time", "", "local time HH:MM (default: 12:00)")
	cmd.Flags().String("tz", "UTC", "IANA time zone")
	return cmd
}

// --- Synastry Command ---

func synastryCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synastry <birth-a> <birth-b>",
		Short: "Compare two birth charts",
		Long: `Compare two birth charts. Each birth is given as
DATE,TIME,ZONE,LATITUDE,LONGITUDE, for example:

  astro synastry 1990-06-15,14:30,America/New_York,40.71,-74.01 1992-02-03,08:00,Europe/London,51.51,-0.13`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			system, _ := cmd.Flags().GetString("house-system")
			var charts [2]entity.Chart
			for i, arg := range args {
				in, err := parseBirth(arg, system)
				if err != nil {
					return fmt.Errorf("birth %d: %w", i+1, err)
				}
				charts[i], err = e.calc.CalculateNatalChart(cmd.Context(), in)
				if err != nil {
					return err
				}
			}
			return printJSON(cmd, synastryusecase.BuildReport(charts[0], charts[1]))
		},
	}
	cmd.Flags().String("house-system", "", "house system for both charts (default: placidus)")
	return cmd
}

// --- helpers ---

func addBirthFlags(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "birth date YYYY-MM-DD")
	cmd.Flags().String("time", "", "birth time HH:MM (default: 12:00)")
	cmd.Flags().String("tz", "UTC", "IANA time zone of the birth time")
	cmd.Flags().Float64("lat", 0, "birth latitude, north positive")
	cmd.Flags().Float64("lon", 0, "birth longitude, east positive")
	cmd.Flags().String("house-system", "", "house system (default: placidus)")
	cmd.Flags().String("zodiac", "tropical", "tropical or sidereal")
	_ = cmd.MarkFlagRequired("date")
}

func addReturnLocationFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("return-lat", 0, "latitude for the return chart (default: birth place)")
	cmd.Flags().Float64("return-lon", 0, "longitude for the return chart (default: birth place)")
}

func birthFromFlags(cmd *cobra.Command) (usecase.NatalInput, error) {
	date, _ := cmd.Flags().GetString("date")
	clock, _ := cmd.Flags().GetString("time")
	tz, _ := cmd.Flags().GetString("tz")
	lat, _ := cmd.Flags().GetFloat64("lat")
	lon, _ := cmd.Flags().GetFloat64("lon")
	system, _ := cmd.Flags().GetString("house-system")
	zodiac, _ := cmd.Flags().GetString("zodiac")
	return natalInput(date, clock, tz, lat, lon, system, zodiac)
}

func returnLocation(cmd *cobra.Command) *entity.Location {
	if !cmd.Flags().Changed("return-lat") && !cmd.Flags().Changed("return-lon") {
		return nil
	}
	lat, _ := cmd.Flags().GetFloat64("return-lat")
	lon, _ := cmd.Flags().GetFloat64("return-lon")
	return &entity.Location{Latitude: lat, Longitude: lon}
}

// parseBirth reads DATE,TIME,ZONE,LAT,LON.
func parseBirth(s, system string) (usecase.NatalInput, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 5 {
		return usecase.NatalInput{}, fmt.Errorf("expected DATE,TIME,ZONE,LAT,LON, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil {
		return usecase.NatalInput{}, fmt.Errorf("invalid latitude %q", parts[3])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[4]), 64)
	if err != nil {
		return usecase.NatalInput{}, fmt.Errorf("invalid longitude %q", parts[4])
	}
	return natalInput(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2]), lat, lon, system, "")
}

func natalInput(date, clock, tz string, lat, lon float64, system, zodiac string) (usecase.NatalInput, error) {
	if lat < -90 || lat > 90 {
		return usecase.NatalInput{}, fmt.Errorf("latitude %g out of range", lat)
	}
	if lon < -180 || lon > 180 {
		return usecase.NatalInput{}, fmt.Errorf("longitude %g out of range", lon)
	}
	instant, err := astro.ParseInstant(date, clock, tz)
	if err != nil {
		return usecase.NatalInput{}, err
	}
	hs, err := usecase.ParseHouseSystem(system, true)
	if err != nil {
		return usecase.NatalInput{}, err
	}
	return usecase.NatalInput{
		Instant:     instant.UTC(),
		Location:    entity.Location{Latitude: lat, Longitude: lon},
		HouseSystem: hs,
		Zodiac:      entity.ZodiacType(strings.ToLower(zodiac)),
	}, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
