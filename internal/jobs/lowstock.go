package jobs

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"crm-service/internal/util"

	"go.uber.org/zap"
)

const jobTimestamp = "2006-01-02 15:04:05"

// LowStockJob invokes the replenishment mutation and logs the updated
// set. Non-200 responses and transport errors are both logged and
// swallowed.
type LowStockJob struct {
	api    *Client
	log    *LogWriter
	logger *zap.Logger
}

// NewLowStockJob creates a low-stock updater job
func NewLowStockJob(api *Client, log *LogWriter) *LowStockJob {
	return &LowStockJob{
		api:    api,
		log:    log,
		logger: util.GetLogger(),
	}
}

// Run implements cron.Job
func (j *LowStockJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	timestamp := time.Now().Format(jobTimestamp)

	result, status, err := j.api.UpdateLowStock(ctx)
	if err != nil {
		j.append(fmt.Sprintf("%s - Error updating low stock: %v", timestamp, err))
		return
	}
	if status != http.StatusOK {
		j.append(fmt.Sprintf("%s - Stock update mutation failed: HTTP %d", timestamp, status))
		return
	}

	if len(result.Products) == 0 {
		j.append(fmt.Sprintf("%s - No low stock products to update", timestamp))
		return
	}

	j.append(fmt.Sprintf("%s - Updated low stock products:", timestamp))
	for _, product := range result.Products {
		j.append(fmt.Sprintf("  %s: new stock = %d", product.Name, product.Stock))
	}
}

func (j *LowStockJob) append(line string) {
	if err := j.log.Append(line); err != nil {
		j.logger.Error("Failed to write low-stock log", zap.Error(err))
	}
}
