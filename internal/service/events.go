package service

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/waaed/assessment-api/internal/models"
)

// EventPublisher emits assessment lifecycle events over NATS for external
// collaborators (gradebooks, notification services). Publication is best
// effort: failures are logged and never block the triggering operation.
type EventPublisher struct {
	conn   *nats.Conn
	prefix string
	logger zerolog.Logger
	now    func() time.Time
}

// NewEventPublisher builds the publisher. A nil connection disables
// publication entirely.
func NewEventPublisher(conn *nats.Conn, prefix string, logger zerolog.Logger) *EventPublisher {
	if prefix == "" {
		prefix = "assessment"
	}
	return &EventPublisher{
		conn:   conn,
		prefix: prefix,
		logger: logger.With().Str("component", "event_publisher").Logger(),
		now:    time.Now,
	}
}

type attemptEvent struct {
	AttemptID     string   `json:"attempt_id"`
	QuizID        string   `json:"quiz_id"`
	StudentID     string   `json:"student_id"`
	State         string   `json:"state"`
	AutoScore     float64  `json:"auto_score"`
	FinalScore    *float64 `json:"final_score"`
	PendingManual bool     `json:"pending_manual"`
	EmittedAt     string   `json:"emitted_at"`
}

type gradeEvent struct {
	QuizID    string   `json:"quiz_id"`
	StudentID string   `json:"student_id"`
	Score     *float64 `json:"score"`
	Policy    string   `json:"policy"`
	EmittedAt string   `json:"emitted_at"`
}

// AttemptSubmitted announces an attempt entering the submitted state.
func (p *EventPublisher) AttemptSubmitted(attempt models.Attempt) {
	if p == nil {
		return
	}
	p.publish(p.prefix+".attempt.submitted", p.attemptPayload(attempt))
}

// AttemptGraded announces an attempt reaching the graded state.
func (p *EventPublisher) AttemptGraded(attempt models.Attempt) {
	if p == nil {
		return
	}
	p.publish(p.prefix+".attempt.graded", p.attemptPayload(attempt))
}

// GradeUpdated announces a recomputed quiz grade. A nil score means the
// grade became undefined again.
func (p *EventPublisher) GradeUpdated(quizID, studentID string, score *float64, policy models.ScoringPolicy) {
	if p == nil {
		return
	}
	p.publish(p.prefix+".grade.updated", gradeEvent{
		QuizID:    quizID,
		StudentID: studentID,
		Score:     score,
		Policy:    string(policy),
		EmittedAt: p.now().UTC().Format(time.RFC3339),
	})
}

func (p *EventPublisher) attemptPayload(attempt models.Attempt) attemptEvent {
	return attemptEvent{
		AttemptID:     attempt.ID.String(),
		QuizID:        attempt.QuizID.String(),
		StudentID:     attempt.StudentID,
		State:         string(attempt.State),
		AutoScore:     attempt.AutoScore,
		FinalScore:    attempt.FinalScore,
		PendingManual: attempt.PendingManual,
		EmittedAt:     p.now().UTC().Format(time.RFC3339),
	}
}

func (p *EventPublisher) publish(subject string, payload interface{}) {
	if p == nil || p.conn == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("failed to encode event payload")
		return
	}

	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish event")
	}
}
