package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "ellarises/internal/adapters/email"
	web "ellarises/internal/adapters/http"
	"ellarises/internal/adapters/http/perf"
	"ellarises/internal/adapters/storage"
	donationStore "ellarises/internal/adapters/storage/donation"
	eventStore "ellarises/internal/adapters/storage/event"
	milestoneStore "ellarises/internal/adapters/storage/milestone"
	participantStore "ellarises/internal/adapters/storage/participant"
	registrationStore "ellarises/internal/adapters/storage/registration"
	surveyStore "ellarises/internal/adapters/storage/survey"
	userStore "ellarises/internal/adapters/storage/user"
	"ellarises/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	dbPath := envOrDefault("ELLA_DB_PATH", "ellarises.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	users := userStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		UserStore:         users,
		ParticipantStore:  participantStore.NewSQLiteStore(timedDB),
		EventStore:        eventStore.NewSQLiteStore(timedDB),
		RegistrationStore: registrationStore.NewSQLiteStore(timedDB),
		DonationStore:     donationStore.NewSQLiteStore(timedDB),
		SurveyStore:       surveyStore.NewSQLiteStore(timedDB),
		MilestoneStore:    milestoneStore.NewSQLiteStore(timedDB),
	}

	// Seed the first manager account from ELLA_ADMIN_EMAIL / ELLA_ADMIN_PASSWORD
	// when the users table is empty.
	seedDeps := orchestrators.SeedManagerDeps{UserStore: users}
	if err := orchestrators.ExecuteSeedManager(context.Background(), seedDeps); err != nil {
		log.Fatalf("failed to seed manager account: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("ELLA_RESEND_KEY")
	emailFrom := envOrDefault("ELLA_RESEND_FROM", "Ella Rises <noreply@ellarises.org>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender())
		if os.Getenv("ELLA_ENV") == "production" {
			log.Println("WARNING: ELLA_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set ELLA_RESEND_KEY for real delivery)")
		}
	}

	mux := web.NewMux("static", stores, collector)

	addr := envOrDefault("ELLA_ADDR", ":8080")
	log.Printf("Ella Rises %s starting on %s (env=%s)", version, addr, envOrDefault("ELLA_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
