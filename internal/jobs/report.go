package jobs

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// WeeklyReportJob logs one summary line with customer count, order
// count, and exact decimal revenue.
type WeeklyReportJob struct {
	api    *Client
	log    *LogWriter
	logger *zap.Logger
}

// NewWeeklyReportJob creates a weekly report job
func NewWeeklyReportJob(api *Client, log *LogWriter) *WeeklyReportJob {
	return &WeeklyReportJob{
		api:    api,
		log:    log,
		logger: util.GetLogger(),
	}
}

// Run implements cron.Job
func (j *WeeklyReportJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	timestamp := time.Now().Format(jobTimestamp)

	customers, err := j.api.ListCustomers(ctx)
	if err != nil {
		j.append(fmt.Sprintf("%s - Error generating CRM report: %v", timestamp, err))
		return
	}

	orders, err := j.api.ListOrders(ctx)
	if err != nil {
		j.append(fmt.Sprintf("%s - Error generating CRM report: %v", timestamp, err))
		return
	}

	revenue := decimal.Zero
	for _, order := range orders {
		revenue = revenue.Add(order.TotalAmount)
	}

	j.append(fmt.Sprintf("%s - Report: %d customers, %d orders, %s revenue",
		timestamp, len(customers), len(orders), revenue.String()))

	j.logger.Info("CRM report generated",
		zap.Int("customers", len(customers)),
		zap.Int("orders", len(orders)),
		zap.String("revenue", revenue.String()))
}

func (j *WeeklyReportJob) append(line string) {
	if err := j.log.Append(line); err != nil {
		j.logger.Error("Failed to write report log", zap.Error(err))
	}
}
