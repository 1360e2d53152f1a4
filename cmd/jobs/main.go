package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crm-service/config"
	"crm-service/internal/jobs"
	"crm-service/internal/util"

	"github.com/robfig/cron/v3"
)

func main() {
	once := flag.String("once", "", "run a single job immediately and exit (heartbeat, low_stock, order_reminders, weekly_report)")
	flag.Parse()

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting CRM job runner")

	apiClient := jobs.NewClient(cfg.Jobs.APIBaseURL,
		time.Duration(cfg.Jobs.HTTPTimeoutSecs)*time.Second)

	heartbeat := jobs.NewHeartbeatJob(apiClient, jobs.NewLogWriter(cfg.Jobs.HeartbeatLogPath))
	lowStock := jobs.NewLowStockJob(apiClient, jobs.NewLogWriter(cfg.Jobs.LowStockLogPath))
	reminders := jobs.NewOrderRemindersJob(apiClient, jobs.NewLogWriter(cfg.Jobs.RemindersLogPath))
	report := jobs.NewWeeklyReportJob(apiClient, jobs.NewLogWriter(cfg.Jobs.ReportLogPath))

	if *once != "" {
		switch *once {
		case "heartbeat":
			heartbeat.Run()
		case "low_stock":
			lowStock.Run()
		case "order_reminders":
			reminders.Run()
		case "weekly_report":
			report.Run()
		default:
			log.Fatalf("Unknown job: %s", *once)
		}
		return
	}

	// Declarative schedule table, read once at start.
	schedule := []struct {
		spec string
		job  cron.Job
	}{
		{cfg.Jobs.HeartbeatSchedule, heartbeat},
		{cfg.Jobs.LowStockSchedule, lowStock},
		{cfg.Jobs.RemindersSchedule, reminders},
		{cfg.Jobs.ReportSchedule, report},
	}

	c := cron.New()
	for _, entry := range schedule {
		if _, err := c.AddJob(entry.spec, entry.job); err != nil {
			log.Fatalf("Failed to schedule job (%s): %v", entry.spec, err)
		}
	}

	c.Start()
	log.Println("Job scheduler started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stopping job scheduler...")
	<-c.Stop().Done()
	log.Println("Job runner exited")
}
