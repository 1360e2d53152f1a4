package jobs

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/util"

	"go.uber.org/zap"
)

const heartbeatTimestamp = "02/01/2006-15:04:05"

// HeartbeatJob appends a liveness line every run and probes the API's
// hello query. Failures are logged, never propagated.
type HeartbeatJob struct {
	api    *Client
	log    *LogWriter
	logger *zap.Logger
}

// NewHeartbeatJob creates a heartbeat job
func NewHeartbeatJob(api *Client, log *LogWriter) *HeartbeatJob {
	return &HeartbeatJob{
		api:    api,
		log:    log,
		logger: util.GetLogger(),
	}
}

// Run implements cron.Job
func (j *HeartbeatJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	timestamp := time.Now().Format(heartbeatTimestamp)
	j.append(fmt.Sprintf("%s CRM is alive", timestamp))

	greeting, err := j.api.Hello(ctx)
	if err != nil {
		j.append(fmt.Sprintf("%s Hello query failed: %v", timestamp, err))
		return
	}
	j.append(fmt.Sprintf("%s Hello: %s", timestamp, greeting))
}

func (j *HeartbeatJob) append(line string) {
	if err := j.log.Append(line); err != nil {
		j.logger.Error("Failed to write heartbeat log", zap.Error(err))
	}
}
