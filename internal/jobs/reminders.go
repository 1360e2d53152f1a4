package jobs

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/util"

	"go.uber.org/zap"
)

// OrderRemindersJob logs one reminder line per order dated within the
// trailing 7 days. There is no dedup across runs: every run re-logs all
// orders still inside the window.
type OrderRemindersJob struct {
	api    *Client
	log    *LogWriter
	logger *zap.Logger

	now func() time.Time
}

// NewOrderRemindersJob creates an order-reminder job
func NewOrderRemindersJob(api *Client, log *LogWriter) *OrderRemindersJob {
	return &OrderRemindersJob{
		api:    api,
		log:    log,
		logger: util.GetLogger(),
		now:    time.Now,
	}
}

// Run implements cron.Job
func (j *OrderRemindersJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	timestamp := j.now().Format(jobTimestamp)

	orders, err := j.api.ListOrders(ctx)
	if err != nil {
		j.append(fmt.Sprintf("%s - Error fetching orders: %v", timestamp, err))
		return
	}

	weekAgo := j.now().AddDate(0, 0, -7)
	var reminded int
	for _, order := range orders {
		if order.OrderDate.Before(weekAgo) {
			continue
		}
		j.append(fmt.Sprintf("%s - Order ID: %d, Customer Email: %s",
			timestamp, order.ID, order.CustomerEmail))
		reminded++
	}

	if reminded == 0 {
		j.append(fmt.Sprintf("%s - No pending orders found", timestamp))
	}

	j.logger.Info("Order reminders processed", zap.Int("count", reminded))
}

func (j *OrderRemindersJob) append(line string) {
	if err := j.log.Append(line); err != nil {
		j.logger.Error("Failed to write reminders log", zap.Error(err))
	}
}
