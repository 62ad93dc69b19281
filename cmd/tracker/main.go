package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/rankwatch/rankwatch/pkg/db"
	"github.com/rankwatch/rankwatch/pkg/domains"
	"github.com/rankwatch/rankwatch/pkg/keywords"
	"github.com/rankwatch/rankwatch/pkg/logging"
	"github.com/rankwatch/rankwatch/pkg/refresh"
	"github.com/rankwatch/rankwatch/pkg/retryqueue"
	"github.com/rankwatch/rankwatch/pkg/scrapers"
	"github.com/rankwatch/rankwatch/pkg/settings"
)

func main() {
	var (
		domainFlag   = flag.String("domain", "", "refresh every keyword of this domain")
		idsFlag      = flag.String("ids", "", "comma-separated keyword IDs to refresh")
		retryFlag    = flag.Bool("retry", false, "refresh the keywords in the retry queue")
		settingsFlag = flag.String("settings", settings.DefaultSettingsPath, "path to the settings file")
		queueFlag    = flag.String("queue", retryqueue.DefaultPath, "path to the retry queue file")
	)
	flag.Parse()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		// Only log warning since .env is optional
		logrus.WithError(err).Warn("Error loading .env file")
	}

	log := logrus.New()
	log.SetFormatter(logging.NewColoredJSONFormatter())

	logLevel := os.Getenv("LOG_LEVEL")
	if level, err := logrus.ParseLevel(logLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Info("Received shutdown signal")
		cancel()
	}()

	database, err := db.SetupDatabase(log)
	if err != nil {
		log.WithError(err).Fatal("Failed to set up database")
	}

	manager := settings.NewManager(log)
	active, err := manager.Load(*settingsFlag)
	if err != nil {
		log.WithError(err).Fatal("Failed to load settings")
	}

	keywordStore := keywords.NewStore(log, database)
	domainStore := domains.NewStore(log, database)
	queue := retryqueue.NewStore(*queueFlag, log)
	client := scrapers.NewClient(log)
	refresher := refresh.New(keywordStore, domainStore, queue, client, log)

	batch, err := selectKeywords(ctx, log, keywordStore, queue, *domainFlag, *idsFlag, *retryFlag)
	if err != nil {
		log.WithError(err).Fatal("Failed to select keywords")
	}
	if len(batch) == 0 {
		log.Info("No keywords to refresh")
		return
	}

	ids := make([]uint, len(batch))
	for i, kw := range batch {
		ids[i] = kw.ID
	}
	if err := keywordStore.MarkUpdating(ctx, ids); err != nil {
		log.WithError(err).Fatal("Failed to mark keywords as updating")
	}

	updated, err := refresher.RefreshAndUpdateKeywords(ctx, batch, active)
	if err != nil {
		log.WithError(err).Fatal("Refresh batch failed")
	}

	failed := 0
	for _, kw := range updated {
		if kw.LastUpdateError != nil {
			failed++
		}
	}
	log.WithFields(logrus.Fields{
		"refreshed": len(updated),
		"failed":    failed,
	}).Info("Refresh run finished")
}

// selectKeywords resolves the requested batch from the -domain, -ids and
// -retry flags. Exactly one selector must be given.
func selectKeywords(ctx context.Context, log *logrus.Logger, store *keywords.Store, queue *retryqueue.Store, domain, ids string, retry bool) ([]keywords.Keyword, error) {
	selectors := 0
	for _, active := range []bool{domain != "", ids != "", retry} {
		if active {
			selectors++
		}
	}
	if selectors != 1 {
		log.Fatal("Exactly one of -domain, -ids or -retry must be given")
	}

	switch {
	case domain != "":
		return store.FindByDomain(ctx, domain)
	case ids != "":
		parsed, err := parseIDs(ids)
		if err != nil {
			return nil, err
		}
		return store.FindByIDs(ctx, parsed)
	default:
		queued, err := queue.List()
		if err != nil {
			return nil, err
		}
		if len(queued) == 0 {
			return []keywords.Keyword{}, nil
		}
		return store.FindByIDs(ctx, queued)
	}
}

func parseIDs(raw string) ([]uint, error) {
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
