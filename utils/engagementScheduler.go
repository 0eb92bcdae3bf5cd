package utils

import (
	"encoding/json"
	"log"
	"time"

	"elearn/config"
	analytics "elearn/controllers/analytics"
	"elearn/database"

	"github.com/go-resty/resty/v2"
	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[ENGAGEMENT-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartEngagementScheduler runs the periodic engagement snapshot job. Each
// run aggregates activity, broadcasts the snapshot to registered subscribers
// and pushes it to the external analytics collector when one is configured.
// The returned cron is owned by the caller; stop it on shutdown.
func StartEngagementScheduler(registry *analytics.Registry) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc(config.AppConfig.EngagementSchedule, func() {
		runEngagementSnapshot(registry)
	})
	if err != nil {
		log.Fatalf("Failed to schedule engagement job: %v", err)
	}

	c.Start()
	logScheduler("Engagement scheduler started with schedule " + config.AppConfig.EngagementSchedule)
	return c
}

func runEngagementSnapshot(registry *analytics.Registry) {
	snapshot, err := analytics.ComputeEngagementSnapshot(database.Database.Db)
	if err != nil {
		logScheduler("Error computing engagement snapshot: " + err.Error())
		return
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		logScheduler("Error encoding engagement snapshot: " + err.Error())
		return
	}

	registry.Broadcast(payload)
	pushSnapshot(payload)
	logScheduler("Engagement snapshot processed")
}

// pushSnapshot delivers the snapshot to the external analytics collector.
// Delivery is best effort; the collector is an external collaborator and
// failures only get logged.
func pushSnapshot(payload []byte) {
	url := config.AppConfig.AnalyticsURL
	if url == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(url)
	if err != nil {
		logScheduler("Error pushing snapshot to collector: " + err.Error())
		return
	}
	if resp.IsError() {
		logScheduler("Collector rejected snapshot: " + resp.Status())
	}
}
