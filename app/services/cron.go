package services

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// StartCron starts the optional in-process trigger. The normal
// deployment model is an external periodic caller hitting the trigger
// endpoints; this runner exists for single-box installs with no cron
// available. It evaluates both schedules every 15 minutes on the
// scheduled (non-manual) path.
func StartCron(db *sql.DB, dispatcher Dispatcher, loc *time.Location) *cron.Cron {
	c := cron.New(cron.WithLocation(loc))

	_, err := c.AddFunc("*/15 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		now := time.Now().In(loc)

		if result, err := RunReminder(ctx, db, dispatcher, now, false); err != nil {
			log.Printf("Scheduled reminder failed: %v", err)
		} else if result.Success {
			log.Printf("Scheduled reminder sent to %d endpoints", result.Endpoints)
		}

		if result, err := RunDigest(ctx, db, dispatcher, now, false); err != nil {
			log.Printf("Scheduled digest failed: %v", err)
		} else if result.Success {
			log.Printf("Scheduled digest sent to %d endpoints", result.Endpoints)
		}
	})
	if err != nil {
		log.Printf("Failed to register notification cron entry: %v", err)
		return c
	}

	c.Start()
	log.Println("In-process notification cron started (every 15 minutes)")
	return c
}
