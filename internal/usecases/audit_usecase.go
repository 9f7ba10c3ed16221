package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"
	"go.uber.org/zap"

	"comphub.backend/internal/domain/entities"
	"comphub.backend/internal/domain/repositories"
	"comphub.backend/pkg/utils"
)

type auditEvent struct {
	loginAttempt *entities.LoginAttempt
	activity     *entities.Activity
}

// AuditRecorder persists login attempts and activity records without ever
// surfacing an error to the caller: a failed audit write must never fail
// the operation being audited. Events are handed to a background worker;
// when the buffer is full they are written inline instead of dropped.
type AuditRecorder struct {
	loginRepo    repositories.LoginAttemptRepository
	activityRepo repositories.ActivityRepository
	logger       *zap.Logger
	events       chan auditEvent
}

// NewAuditRecorder creates an audit recorder with the given buffer size
func NewAuditRecorder(
	loginRepo repositories.LoginAttemptRepository,
	activityRepo repositories.ActivityRepository,
	logger *zap.Logger,
	buffer int,
) *AuditRecorder {
	if buffer <= 0 {
		buffer = 256
	}
	return &AuditRecorder{
		loginRepo:    loginRepo,
		activityRepo: activityRepo,
		logger:       logger,
		events:       make(chan auditEvent, buffer),
	}
}

// Run drains the event buffer until ctx is cancelled. Call in its own
// goroutine. On shutdown the remaining buffered events are flushed.
func (a *AuditRecorder) Run(ctx context.Context) {
	for {
		select {
		case ev := <-a.events:
			a.write(context.Background(), ev)
		case <-ctx.Done():
			for {
				select {
				case ev := <-a.events:
					a.write(context.Background(), ev)
				default:
					return
				}
			}
		}
	}
}

// RecordLoginAttempt records an authentication attempt. The userID is
// unset when the handle did not resolve to an account.
func (a *AuditRecorder) RecordLoginAttempt(ctx context.Context, userID uuid.NullUUID, handle, ip, userAgent string, success bool) {
	a.enqueue(ctx, auditEvent{loginAttempt: &entities.LoginAttempt{
		ID:              utils.GenerateUUIDv7(),
		UserID:          userID,
		EmailOrUsername: handle,
		IPAddress:       ip,
		UserAgent:       userAgent,
		Success:         success,
		Timestamp:       time.Now(),
	}})
}

// RecordActivity records a user activity. Client metadata parsed from the
// user agent string is merged into the caller's metadata.
func (a *AuditRecorder) RecordActivity(ctx context.Context, userID uuid.UUID, activityType entities.ActivityType, description, ip, ua string, metadata map[string]any) {
	if !entities.ValidActivityType(activityType) {
		activityType = entities.ActivityOther
	}
	a.enqueue(ctx, auditEvent{activity: &entities.Activity{
		ID:           utils.GenerateUUIDv7(),
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
		IPAddress:    ip,
		UserAgent:    ua,
		Metadata:     mergeClientMetadata(metadata, ua),
		Timestamp:    time.Now(),
	}})
}

func (a *AuditRecorder) enqueue(ctx context.Context, ev auditEvent) {
	select {
	case a.events <- ev:
	default:
		// Buffer full. Write inline rather than drop the record.
		a.write(ctx, ev)
	}
}

func (a *AuditRecorder) write(ctx context.Context, ev auditEvent) {
	var err error
	switch {
	case ev.loginAttempt != nil:
		err = a.loginRepo.Append(ctx, ev.loginAttempt)
	case ev.activity != nil:
		err = a.activityRepo.Append(ctx, ev.activity)
	}
	if err != nil {
		a.logger.Warn("failed to persist audit record", zap.Error(err))
	}
}

// mergeClientMetadata enriches activity metadata with browser and
// platform details parsed from the user agent string.
func mergeClientMetadata(metadata map[string]any, ua string) map[string]any {
	if ua == "" {
		return metadata
	}
	parsed := useragent.New(ua)
	if metadata == nil {
		metadata = make(map[string]any, 3)
	}
	browser, version := parsed.Browser()
	if browser != "" {
		metadata["browser"] = browser
		metadata["browser_version"] = version
	}
	if parsed.OS() != "" {
		metadata["os"] = parsed.OS()
	}
	metadata["mobile"] = parsed.Mobile()
	return metadata
}

// ListUserActivities returns a user's activity feed, newest first
func (a *AuditRecorder) ListUserActivities(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Activity, int64, error) {
	return a.activityRepo.ListByUser(ctx, userID, limit, offset)
}

// ListLoginHistory returns a user's login attempts, newest first
func (a *AuditRecorder) ListLoginHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.LoginAttempt, int64, error) {
	return a.loginRepo.ListByUser(ctx, userID, limit, offset)
}
