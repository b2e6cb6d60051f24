package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"nutricare-server/internal/agent"
	"nutricare-server/internal/appointment"
	"nutricare-server/internal/calc"
	"nutricare-server/internal/config"
	"nutricare-server/internal/dashboard"
	"nutricare-server/internal/patient"
	"nutricare-server/internal/recipe"
	"nutricare-server/internal/report"
	"nutricare-server/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.IsDev() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// 1. Infrastructure
	var db *sql.DB
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			break
		}
		log.Info().Int("attempt", i+1).Msg("waiting for database")
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to database")
	}
	log.Info().Msg("connected to database")

	m, err := migrate.New(cfg.MigrationsPath, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("migration init failed")
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal().Err(err).Msg("migration up failed")
	}
	log.Info().Msg("migrations applied")

	// 2. Clients
	gemini := agent.NewGemini(cfg.GeminiAPIKey)

	// 3. Services
	records := store.New(db)

	patientRepo := patient.NewRepository(records)
	patientSvc := patient.NewService(patientRepo, gemini)
	exporter := report.NewService()
	patientHandler := patient.NewHandler(patientSvc, exporter)

	appointmentRepo := appointment.NewRepository(records)
	appointmentSvc := appointment.NewService(appointmentRepo, patientRepo)
	appointmentHandler := appointment.NewHandler(appointmentSvc)

	recipeRepo := recipe.NewRepository(records)
	recipeSvc := recipe.NewService(recipeRepo, gemini)
	recipeHandler := recipe.NewHandler(recipeSvc)

	dashboardSvc := dashboard.NewService(patientSvc, appointmentSvc)
	dashboardHandler := dashboard.NewHandler(dashboardSvc)

	calcHandler := calc.NewHandler()

	// 4. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		patient.RegisterRoutes(r, patientHandler)
		appointment.RegisterRoutes(r, appointmentHandler)
		recipe.RegisterRoutes(r, recipeHandler)
		dashboard.RegisterRoutes(r, dashboardHandler)
		calc.RegisterRoutes(r, calcHandler)
	})

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(origins))
	allowAll := false
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")
			if r.Method == http.MethodOptions {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
