package track

import (
	"context"

	"github.com/trezcool/darasa/core"
)

type Repository interface {
	QueryTopicPerformance(ctx context.Context, userID string, exec ...core.DBExecutor) ([]TopicPerformance, error)
	UpsertTopicPerformance(ctx context.Context, tp TopicPerformance, exec ...core.DBExecutor) (TopicPerformance, error)
}

// WeakTopics reduces raw per-topic counters to one weakness score per
// subject. Scores are summed rather than averaged so that subjects with
// many weak topics rank higher.
func WeakTopics(perfs []TopicPerformance) []WeakTopic {
	sums := make(map[string]float64)
	order := make([]string, 0, len(perfs))

	for _, tp := range perfs {
		if _, seen := sums[tp.Subject]; !seen {
			order = append(order, tp.Subject)
		}
		sums[tp.Subject] += tp.ErrorRate()
	}

	topics := make([]WeakTopic, 0, len(order))
	for _, subj := range order {
		topics = append(topics, WeakTopic{Subject: subj, ErrorRate: sums[subj]})
	}
	return topics
}
