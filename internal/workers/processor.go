package workers

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/mavropro/mavro-api/internal/database"
	"github.com/mavropro/mavro-api/internal/queue"
	"github.com/mavropro/mavro-api/internal/services/vivi"
	"github.com/mavropro/mavro-api/internal/session"
)

// Processor consumes queue jobs: feedback alerts, feedback digests, and KPI
// snapshot refreshes.
type Processor struct {
	feedbackRepo database.FeedbackRepositoryInterface
	kpis         *session.KPIStore
	jobQueue     queue.JobQueue // For re-enqueueing jobs with delays
	rng          *rand.Rand
	logger       *zap.Logger
}

// NewProcessor creates a new job processor
func NewProcessor(
	feedbackRepo database.FeedbackRepositoryInterface,
	kpis *session.KPIStore,
	jobQueue queue.JobQueue,
	logger *zap.Logger,
) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		feedbackRepo: feedbackRepo,
		kpis:         kpis,
		jobQueue:     jobQueue,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:       logger,
	}
}

// ProcessFeedbackAlertJob handles an alert for a high or critical feedback
// submission.
func (p *Processor) ProcessFeedbackAlertJob(ctx context.Context, job *queue.Job) error {
	if job.FeedbackID == "" {
		return fmt.Errorf("feedback_id is required for feedback alert job")
	}

	feedback, err := p.feedbackRepo.GetFeedback(ctx, job.FeedbackID)
	if err != nil {
		return fmt.Errorf("failed to get feedback: %w", err)
	}
	if feedback == nil {
		// Deleted between enqueue and processing; nothing to alert on.
		p.logger.Warn("feedback_alert_target_missing",
			zap.String("feedback_id", job.FeedbackID))
		return nil
	}

	p.logger.Warn("feedback_alert",
		zap.String("feedback_id", feedback.ID),
		zap.String("type", string(feedback.Type)),
		zap.String("severity", string(feedback.Severity)),
		zap.String("title", feedback.Title),
		zap.String("session_id", feedback.SessionID),
	)
	return nil
}

// ProcessFeedbackDigestJob builds the periodic feedback digest from the
// analytics rollup.
func (p *Processor) ProcessFeedbackDigestJob(ctx context.Context, job *queue.Job) error {
	analytics, err := p.feedbackRepo.Analytics(ctx)
	if err != nil {
		return fmt.Errorf("failed to build feedback digest: %w", err)
	}

	p.logger.Info("feedback_digest",
		zap.Int("total_feedback", analytics.TotalFeedback),
		zap.Any("by_type", analytics.FeedbackByType),
		zap.Any("by_severity", analytics.FeedbackBySeverity),
		zap.Float64("average_rating", analytics.AverageRating),
		zap.Int("total_ratings", analytics.TotalRatings),
	)
	return nil
}

// ProcessKPIRefreshJob jitters every live KPI snapshot.
func (p *Processor) ProcessKPIRefreshJob(ctx context.Context, job *queue.Job) error {
	if p.kpis == nil {
		return fmt.Errorf("kpi store not configured")
	}

	updated, err := p.kpis.JitterAll(ctx, p.rng)
	if err != nil {
		return fmt.Errorf("failed to refresh kpi snapshots: %w", err)
	}

	p.logger.Debug("kpi_snapshots_refreshed", zap.Int("updated", updated))
	return nil
}

// ProcessJob processes a job based on its type
func (p *Processor) ProcessJob(ctx context.Context, msg *queue.Message) error {
	job := msg.Job

	// Respect NotBefore; not-yet-due jobs go back untouched.
	if !job.ShouldProcess() {
		if job.IsExpired() {
			p.logger.Info("job_expired",
				zap.String("job_id", job.ID.String()),
				zap.String("job_type", string(job.Type)))
			if ackErr := msg.Ack(); ackErr != nil {
				return fmt.Errorf("failed to ack expired job: %w", ackErr)
			}
			return nil
		}
		p.logger.Debug("job_not_ready",
			zap.String("job_id", job.ID.String()),
			zap.Timep("not_before", job.NotBefore))
		if ackErr := msg.Ack(); ackErr != nil {
			p.logger.Error("job_ack_failed", zap.Error(ackErr))
		}
		return nil
	}

	switch job.Type {
	case queue.JobTypeFeedbackAlert:
		if err := p.ProcessFeedbackAlertJob(ctx, job); err != nil {
			return p.handleJobError(ctx, msg, job, err, "feedback alert")
		}
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack job: %w", ackErr)
		}
		return nil

	case queue.JobTypeFeedbackDigest:
		if err := p.ProcessFeedbackDigestJob(ctx, job); err != nil {
			// Digest failures are low stakes; the next scheduled run covers it.
			if nackErr := msg.Nack(false); nackErr != nil {
				p.logger.Error("job_nack_failed", zap.Error(nackErr))
			}
			return fmt.Errorf("digest failed: %w", err)
		}
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack digest job: %w", ackErr)
		}
		return nil

	case queue.JobTypeKPIRefresh:
		if err := p.ProcessKPIRefreshJob(ctx, job); err != nil {
			// The refresher reschedules; a missed tick only delays jitter.
			if nackErr := msg.Nack(false); nackErr != nil {
				p.logger.Error("job_nack_failed", zap.Error(nackErr))
			}
			return fmt.Errorf("kpi refresh failed: %w", err)
		}
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack kpi refresh job: %w", ackErr)
		}
		return nil

	default:
		if nackErr := msg.Nack(false); nackErr != nil { // Unknown job type, send to DLQ
			p.logger.Error("job_nack_failed", zap.Error(nackErr))
		}
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

// handleJobError handles errors from job processing with retry logic keyed on
// the provider error taxonomy.
func (p *Processor) handleJobError(ctx context.Context, msg *queue.Message, job *queue.Job, err error, jobType string) error {
	// Quota errors get a long delayed retry via the delayed exchange.
	if vivi.IsQuotaError(err) {
		retryDelay := vivi.GetRetryDelay(err, job.RetryCount)
		notBefore := time.Now().Add(retryDelay)

		p.logger.Warn("job_quota_exhausted",
			zap.String("job_id", job.ID.String()),
			zap.String("job_type", jobType),
			zap.Duration("retry_delay", retryDelay),
			zap.Error(err))

		if ackErr := msg.Ack(); ackErr != nil {
			p.logger.Error("job_ack_failed", zap.Error(ackErr))
		}

		if p.jobQueue != nil {
			delayed := p.delayedRetry(job, notBefore)
			if enqueueErr := p.jobQueue.Enqueue(ctx, delayed); enqueueErr != nil {
				return fmt.Errorf("quota exhausted, failed to re-enqueue: %w", enqueueErr)
			}
			return nil
		}

		if nackErr := msg.Nack(false); nackErr != nil {
			p.logger.Error("job_nack_failed", zap.Error(nackErr))
		}
		return fmt.Errorf("quota exhausted (job %s): %w", job.ID, err)
	}

	// Rate limits retry with bounded backoff.
	if vivi.IsRateLimitError(err) {
		retryDelay := vivi.GetRetryDelay(err, job.RetryCount)

		if job.CanRetry() && p.jobQueue != nil {
			notBefore := time.Now().Add(retryDelay)

			if ackErr := msg.Ack(); ackErr != nil {
				p.logger.Error("job_ack_failed", zap.Error(ackErr))
			}

			delayed := p.delayedRetry(job, notBefore)
			if enqueueErr := p.jobQueue.Enqueue(ctx, delayed); enqueueErr != nil {
				if nackErr := msg.Nack(true); nackErr != nil {
					p.logger.Error("job_nack_failed", zap.Error(nackErr))
				}
				return fmt.Errorf("rate limited, failed to re-enqueue: %w", enqueueErr)
			}

			p.logger.Info("job_rate_limited_rescheduled",
				zap.String("job_id", job.ID.String()),
				zap.String("job_type", jobType),
				zap.Duration("retry_delay", retryDelay))
			return nil
		}

		if job.CanRetry() {
			job.IncrementRetry()
			if nackErr := msg.Nack(true); nackErr != nil {
				p.logger.Error("job_nack_failed", zap.Error(nackErr))
			}
			return fmt.Errorf("rate limited (will retry): %w", err)
		}
	}

	// Standard retry for everything else.
	if job.CanRetry() {
		job.IncrementRetry()
		p.logger.Warn("job_failed_retrying",
			zap.String("job_id", job.ID.String()),
			zap.String("job_type", jobType),
			zap.Int("retry_count", job.RetryCount),
			zap.Int("max_retries", job.MaxRetries),
			zap.Error(err))
		if nackErr := msg.Nack(true); nackErr != nil {
			p.logger.Error("job_nack_failed", zap.Error(nackErr))
		}
		return fmt.Errorf("job failed (will retry): %w", err)
	}

	// Max retries exceeded, send to DLQ.
	p.logger.Error("job_failed_to_dlq",
		zap.String("job_id", job.ID.String()),
		zap.String("job_type", jobType),
		zap.Int("max_retries", job.MaxRetries),
		zap.Error(err))
	if nackErr := msg.Nack(false); nackErr != nil {
		p.logger.Error("job_nack_failed", zap.Error(nackErr))
	}
	return fmt.Errorf("job failed (max retries): %w", err)
}

func (p *Processor) delayedRetry(job *queue.Job, notBefore time.Time) *queue.Job {
	return &queue.Job{
		ID:         job.ID,
		Type:       job.Type,
		FeedbackID: job.FeedbackID,
		SessionID:  job.SessionID,
		NotBefore:  &notBefore,
		NotAfter:   job.NotAfter,
		Metadata:   job.Metadata,
		CreatedAt:  job.CreatedAt,
		RetryCount: job.RetryCount + 1,
		MaxRetries: job.MaxRetries,
	}
}
