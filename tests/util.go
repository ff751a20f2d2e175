package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/track"
	"github.com/trezcool/darasa/core/user"
)

func CreateUser(
	t *testing.T,
	repo interface{ CreateUser(user.User) user.User },
	name, email, role string,
	isActive bool,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	return repo.CreateUser(user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	})
}

func CreateCourse(
	t *testing.T,
	repo course.Repository,
	title, subject string,
	pathPosition float64,
	prerequisites ...string,
) course.Course {
	t.Helper()

	crs, err := repo.CreateCourse(context.Background(), course.Course{
		Title:         title,
		Subject:       subject,
		PathPosition:  pathPosition,
		Prerequisites: prerequisites,
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreatePurchase(
	t *testing.T,
	repo interface {
		CreatePurchase(course.Purchase) course.Purchase
	},
	userID, courseID string,
) course.Purchase {
	t.Helper()

	return repo.CreatePurchase(course.Purchase{
		UserID:    userID,
		CourseID:  courseID,
		Status:    course.PurchaseCompleted,
		CreatedAt: time.Now().UTC(),
	})
}

func CreatePerformance(
	t *testing.T,
	repo track.Repository,
	userID, subject, topic string,
	totalQuestions, incorrectAnswers int,
) track.TopicPerformance {
	t.Helper()

	tp, err := repo.UpsertTopicPerformance(context.Background(), track.TopicPerformance{
		UserID:           userID,
		Subject:          subject,
		Topic:            topic,
		TotalQuestions:   totalQuestions,
		IncorrectAnswers: incorrectAnswers,
		LastAssessedAt:   null.TimeFrom(time.Now().UTC()),
	})
	if err != nil {
		t.Fatalf("CreatePerformance() failed: %v", err)
	}
	return tp
}
