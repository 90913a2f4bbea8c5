// Command scan runs one SLA pass plus the retention-window digest and exits.
// It is meant to be driven by cron or a systemd timer every few minutes; the
// services themselves never self-trigger.
package main

import (
	"log"
	"time"

	"github.com/anicetocarvalho-source/gestaodocumental-sub004/config"
	"github.com/anicetocarvalho-source/gestaodocumental-sub004/services"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}
	config.InitDB()

	notifier := services.NewNotificationService(config.DB)
	now := time.Now()

	slaSvc := services.NewSLAService(config.DB, notifier)
	findings, err := slaSvc.Scan(now)
	if err != nil {
		log.Fatalf("SLA scan failed: %v", err)
	}
	for _, finding := range findings {
		log.Printf("SLA alert: %s %d is %s (deadline %s)",
			finding.ProcessType, finding.InstanceID, finding.Level,
			finding.Deadline.Format(time.RFC3339))
	}
	log.Printf("SLA scan complete: %d escalation(s)", len(findings))

	retentionSvc := services.NewRetentionService(config.DB, notifier)
	week, err := retentionSvc.ExpiringThisWeek(now)
	if err != nil {
		log.Fatalf("retention window query failed: %v", err)
	}
	month, err := retentionSvc.ExpiringNextMonth(now)
	if err != nil {
		log.Fatalf("retention window query failed: %v", err)
	}
	log.Printf("Retention windows: %d due this week, %d due within a month", len(week), len(month))
}
