package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/track"
)

type trackRepository struct {
	db *trackTable
}

var _ track.Repository = (*trackRepository)(nil) // interface compliance check

func NewTrackRepository(db *DB) *trackRepository {
	return &trackRepository{db: db.track}
}

func (repo *trackRepository) QueryTopicPerformance(ctx context.Context, userID string, exec ...core.DBExecutor) ([]track.TopicPerformance, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	perfs := make([]track.TopicPerformance, 0)
	for _, tp := range repo.db.table {
		if tp.UserID == userID {
			perfs = append(perfs, *tp)
		}
	}
	sort.Slice(perfs, func(i, j int) bool {
		if perfs[i].Subject != perfs[j].Subject {
			return perfs[i].Subject < perfs[j].Subject
		}
		return perfs[i].Topic < perfs[j].Topic
	})
	return perfs, nil
}

func (repo *trackRepository) UpsertTopicPerformance(ctx context.Context, tp track.TopicPerformance, exec ...core.DBExecutor) (track.TopicPerformance, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for id, existing := range repo.db.table {
		if existing.UserID == tp.UserID && existing.Subject == tp.Subject && existing.Topic == tp.Topic {
			tp.ID = id
			repo.db.table[id] = &tp
			return tp, nil
		}
	}
	if tp.ID == "" {
		tp.ID = uuid.New().String()
	}
	repo.db.table[tp.ID] = &tp
	return tp, nil
}
