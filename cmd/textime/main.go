package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/textime/internal/app"
	"github.com/coreman2200/textime/internal/brightness"
	"github.com/coreman2200/textime/internal/clock"
	"github.com/coreman2200/textime/internal/config"
	diag "github.com/coreman2200/textime/internal/diagnostics"
	"github.com/coreman2200/textime/internal/led"
	"github.com/coreman2200/textime/internal/model"
	"github.com/coreman2200/textime/internal/ws"
)

type closer interface{ Close() error }

func main() {
	// ---- Flags (override config.yaml when given) ----
	var (
		configPath = flag.StringP("config", "c", "textime.yaml", "path to the YAML config")
		driver     = flag.String("driver", "spi", "driver: spi | console | sim")
		ledConfig  = flag.String("led-config", "40x40@1", "LED configuration: 40x40@1 | 100x100@1 | 100x100@2")
		addr       = flag.String("addr", ":8080", "HTTP listen address")
		mode       = flag.IntP("mode", "m", 1, "start-up mode index")
		animation  = flag.IntP("animation", "a", 0, "start-up animation index")
		tickUs     = flag.Int("tick-us", 1000, "engine tick period in microseconds")
		seed       = flag.Int64("seed", 0, "random seed, 0 = time based")
		simOnly    = flag.Bool("sim-only", false, "force simulation (no hardware output)")
		verbose    = flag.BoolP("verbose", "v", false, "debug logging")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	// ---- Load config (optional) ----
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with defaults and flags")
		cfg = config.Default()
	}

	// ---- Flags given on the command line win over the file ----
	set := flag.CommandLine.Changed
	if set("driver") {
		cfg.Driver = *driver
	}
	if set("led-config") {
		cfg.LedConfig = *ledConfig
	}
	if set("addr") {
		cfg.Addr = *addr
	}
	if set("mode") {
		cfg.Mode = *mode
	}
	if set("animation") {
		cfg.Animation = *animation
	}
	if set("tick-us") {
		cfg.TickUs = *tickUs
	}
	if set("seed") {
		cfg.Seed = *seed
	}
	if *simOnly {
		cfg.Driver = "sim"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	hub := ws.NewHub(log.Logger)

	// ---- Driver selection ----
	count := app.StripSize()
	var strip led.Strip
	var buf *led.Buffer
	switch cfg.Driver {
	case "spi":
		drv, err := led.OpenNRZ(cfg.SPI.Dev, count, physic.Frequency(cfg.SPI.SpeedHz)*physic.Hertz)
		if err != nil {
			log.Warn().Err(err).
				Str("driver", "spi").
				Str("dev", cfg.SPI.Dev).
				Msg("SPI init failed; falling back to SIM")
			hub.PushDiag(diag.Diagnostic{Severity: diag.Warn, Code: diag.DriverFallback, Summary: "SPI unavailable, simulating", Detail: err.Error()})
			sim := led.NewSim(count)
			strip, buf = sim, &sim.Buffer
		} else {
			strip, buf = drv, &drv.Buffer
		}
	case "console":
		con := led.NewConsole(os.Stderr, count)
		strip, buf = con, &con.Buffer
	default:
		sim := led.NewSim(count)
		strip, buf = sim, &sim.Buffer
	}
	buf.WhiteCap = cfg.Power.WhiteCap
	buf.LimitMA = cfg.Power.LimitAmps * 1000

	// ---- Sensors ----
	var thermo clock.Thermometer = clock.Unavailable{}
	if cfg.I2C.BMEAddr != 0 && cfg.Driver != "sim" {
		bme, err := clock.OpenBME(cfg.I2C.Bus, cfg.I2C.BMEAddr)
		if err != nil {
			log.Warn().Err(err).Str("bus", cfg.I2C.Bus).Msg("thermometer unavailable")
		} else {
			thermo = bme
			defer bme.Close()
		}
	}
	var lux brightness.LuxReader = brightness.Constant(cfg.Lux.Value)
	if cfg.Lux.Path != "" {
		lux = brightness.IIO{Path: cfg.Lux.Path}
	}

	core, err := app.InitCore(cfg, *configPath, app.HW{
		Strip:       strip,
		Clock:       clock.System{},
		Thermometer: thermo,
		Lux:         lux,
	}, hub, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("init")
	}

	// ---- HTTP routes ----
	mux := http.NewServeMux()
	hub.Register(mux)
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      withCORS(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ---- Run engine, hub & server ----
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go hub.Run(ctx)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("driver", cfg.Driver).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()
	core.Run(ctx)

	// ---- Graceful shutdown ----
	log.Info().Msg("shutting down")
	shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdown)

	// Leave the panel dark.
	strip.ClearTo(model.Black)
	if err := strip.Show(); err != nil {
		log.Debug().Err(err).Msg("blank on exit")
	}
	if c, ok := strip.(closer); ok {
		_ = c.Close()
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.ServeHTTP(w, r)
	})
}
