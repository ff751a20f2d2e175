package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/track"
)

type trackRepository struct {
	exec core.DBExecutor
}

var _ track.Repository = (*trackRepository)(nil) // interface compliance check

func NewTrackRepository(exec core.DBExecutor) *trackRepository {
	return &trackRepository{exec: exec}
}

func (repo trackRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

func (repo trackRepository) QueryTopicPerformance(ctx context.Context, userID string, exec ...core.DBExecutor) ([]track.TopicPerformance, error) {
	perfs := make([]track.TopicPerformance, 0)
	err := repo.getExec(exec).SelectContext(ctx, &perfs, `
		SELECT * FROM topic_performance WHERE user_id = $1 ORDER BY subject, topic`, userID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying topic performance")
	}
	return perfs, nil
}

func (repo trackRepository) UpsertTopicPerformance(ctx context.Context, tp track.TopicPerformance, exec ...core.DBExecutor) (track.TopicPerformance, error) {
	now := time.Now().UTC()
	if tp.ID == "" {
		tp.ID = uuid.New().String()
		tp.CreatedAt = now
	}
	tp.UpdatedAt = now

	row := repo.getExec(exec).QueryRowxContext(ctx, `
		INSERT INTO topic_performance (id, user_id, subject, topic, total_questions, incorrect_answers, last_assessed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, subject, topic) DO UPDATE SET
			total_questions   = EXCLUDED.total_questions,
			incorrect_answers = EXCLUDED.incorrect_answers,
			last_assessed_at  = EXCLUDED.last_assessed_at,
			updated_at        = EXCLUDED.updated_at
		RETURNING *`,
		tp.ID, tp.UserID, tp.Subject, tp.Topic, tp.TotalQuestions, tp.IncorrectAnswers, tp.LastAssessedAt, tp.CreatedAt, tp.UpdatedAt,
	)
	if err := row.StructScan(&tp); err != nil {
		return track.TopicPerformance{}, errors.Wrap(err, "upserting topic performance")
	}
	return tp, nil
}
