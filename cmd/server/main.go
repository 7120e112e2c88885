package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	_ "modernc.org/sqlite"

	emailPkg "coachdesk/internal/adapters/email"
	web "coachdesk/internal/adapters/http"
	"coachdesk/internal/adapters/storage"
	accountStore "coachdesk/internal/adapters/storage/account"
	eventStore "coachdesk/internal/adapters/storage/event"
	kvStore "coachdesk/internal/adapters/storage/kv"
	notificationStore "coachdesk/internal/adapters/storage/notification"
	personStore "coachdesk/internal/adapters/storage/person"
	requestStore "coachdesk/internal/adapters/storage/request"
	sessionStore "coachdesk/internal/adapters/storage/session"
	"coachdesk/internal/application/orchestrators"

	"github.com/google/uuid"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// WAL mode, foreign keys, and a busy timeout keep concurrent dashboard
	// reads from tripping over writes.
	dbPath := envOrDefault("COACHDESK_DB", "coachdesk.db")
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

	if err := storage.MigrateDB(db, dbPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	acctStore := accountStore.NewSQLiteStore(db)
	people := personStore.NewSQLiteStore(db)
	events := eventStore.NewSQLiteStore(db)
	notifications := notificationStore.NewSQLiteStore(db)
	requests := requestStore.NewSQLiteStore(db)
	collections := kvStore.NewSQLiteStore(db)

	stores := &web.Stores{
		AccountStore:      acctStore,
		PersonStore:       people,
		EventStore:        events,
		NotificationStore: notifications,
		RequestStore:      requests,
		Collections:       collections,
	}

	// Seed the default admin account if no accounts exist
	adminEmail := envOrDefault("COACHDESK_ADMIN_EMAIL", "admin@coachdesk.local")
	adminPassword := envOrDefault("COACHDESK_ADMIN_PASSWORD", "change me soon")
	seedDeps := orchestrators.CreateAccountDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, adminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Seed demo people, events and lectures for development only
	if os.Getenv("COACHDESK_ENV") != "production" {
		demoDeps := orchestrators.SeedDemoDeps{
			PersonStore:       people,
			EventStore:        events,
			NotificationStore: notifications,
			Lectures:          collections,
			GenerateID:        func() string { return uuid.New().String() },
			Now:               time.Now,
		}
		if err := orchestrators.ExecuteSeedDemoData(context.Background(), demoDeps); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
		log.Println("Demo seed data loaded (dev mode)")
	}

	// Configure email sender
	resendKey := os.Getenv("COACHDESK_RESEND_KEY")
	emailFrom := envOrDefault("COACHDESK_RESEND_FROM", "CoachDesk <noreply@coachdesk.local>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom)
		if os.Getenv("COACHDESK_ENV") == "production" {
			log.Println("WARNING: COACHDESK_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set COACHDESK_RESEND_KEY for real delivery)")
		}
	}

	// Live meeting sessions are held in memory; transcripts are archived to
	// the kv repository when a session ends.
	meetings := sessionStore.NewRegistry()

	mux := web.NewMux(stores, meetings)

	addr := envOrDefault("COACHDESK_ADDR", ":8080")
	log.Printf("CoachDesk %s starting on %s (env=%s, schema=%d)", version, addr, envOrDefault("COACHDESK_ENV", "development"), storage.LatestSchemaVersion())

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
