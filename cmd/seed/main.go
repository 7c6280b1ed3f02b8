// Command seed creates the schema and inserts a few sample events. Events that already exist
// with the same name, date and city are skipped, so it can be run repeatedly.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"ticketresale/config"
	"ticketresale/internal/domain"
	"ticketresale/internal/repository/postgres"
	"ticketresale/internal/services"
)

var sampleEvents = []domain.CreateEventInput{
	{Name: "Summer Jazz Festival", Date: domain.Date{Year: 2025, Month: time.July, Day: 12}, City: "Austin", ZipCode: "78701"},
	{Name: "Indie Rock Night", Date: domain.Date{Year: 2025, Month: time.August, Day: 3}, City: "Portland", ZipCode: "97205"},
	{Name: "Symphony in the Park", Date: domain.Date{Year: 2025, Month: time.September, Day: 20}, City: "Chicago"},
	{Name: "Championship Final", Date: domain.Date{Year: 2025, Month: time.October, Day: 5}, City: "Denver", ZipCode: "80204"},
	{Name: "Stand-up Comedy Gala", Date: domain.Date{Year: 2025, Month: time.November, Day: 14}, City: "New York", ZipCode: "10001"},
}

func main() {
	dryRun := flag.Bool("dry-run", false, "print the events without inserting them")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	if *dryRun {
		for _, in := range sampleEvents {
			fmt.Printf("%s  %-24s %s\n", in.Date, in.Name, in.City)
		}
		return
	}

	ctx := context.Background()
	db, err := postgres.Open(ctx, cfg.DBUrl, postgres.PoolOptions{MaxOpenConns: 2, MaxIdleConns: 1})
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.NewSchemaStore(db).EnsureSchema(ctx); err != nil {
		logger.Error("failed to create schema", "err", err)
		os.Exit(1)
	}

	svc := services.NewListingService(
		postgres.NewEventRepository(db),
		postgres.NewSellerRepository(db),
		postgres.NewTransactor(db),
		cfg.RequestTimeout,
	)

	created, skipped := 0, 0
	for _, in := range sampleEvents {
		exists, err := eventExists(ctx, svc, in)
		if err != nil {
			logger.Error("failed to look up event", "name", in.Name, "err", err)
			os.Exit(1)
		}
		if exists {
			skipped++
			continue
		}
		ev, err := svc.CreateEvent(ctx, in)
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				logger.Error("sample event rejected", "name", in.Name, "problems", verr.Problems)
			} else {
				logger.Error("failed to create event", "name", in.Name, "err", err)
			}
			os.Exit(1)
		}
		logger.Info("created event", "id", ev.ID, "name", ev.Name, "date", ev.Date.String())
		created++
	}
	logger.Info("seed complete", "created", created, "skipped", skipped)
}

func eventExists(ctx context.Context, svc domain.ListingService, in domain.CreateEventInput) (bool, error) {
	date := in.Date
	events, err := svc.ListEvents(ctx, domain.EventFilter{Name: in.Name, City: in.City, Date: &date})
	if err != nil {
		return false, err
	}
	for _, ev := range events {
		if ev.Name == in.Name && ev.City == in.City {
			return true, nil
		}
	}
	return false, nil
}
