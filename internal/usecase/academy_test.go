package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"academy-concierge/internal/domain"
)

func newAcademyService(t *testing.T, academy AcademyProvider) *AcademyService {
	t.Helper()
	svc, err := NewAcademyService(academy)
	require.NoError(t, err)
	return svc
}

func TestListCourses_DefaultLimit(t *testing.T) {
	var got domain.CourseQuery
	academy := &mockAcademy{getCourses: func(q domain.CourseQuery) ([]domain.Course, error) {
		got = q
		return []domain.Course{{ID: "crs-1"}}, nil
	}}
	svc := newAcademyService(t, academy)

	courses, err := svc.ListCourses(context.Background(), ListCoursesInput{Category: "talleres"})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	require.Equal(t, domain.CourseQuery{Category: "talleres", Limit: defaultEndpointLimit}, got)
}

func TestListCourses_UpstreamError(t *testing.T) {
	academy := &mockAcademy{getCourses: func(domain.CourseQuery) ([]domain.Course, error) {
		return nil, errors.New("401")
	}}
	svc := newAcademyService(t, academy)

	_, err := svc.ListCourses(context.Background(), ListCoursesInput{})
	requireUsecaseError(t, err, ErrorUpstream, "crm_courses_error")
}

func TestCourseDetail_ByID(t *testing.T) {
	academy := &mockAcademy{getCourseByID: func(id string) (*domain.Course, error) {
		require.Equal(t, "crs-1", id)
		return &domain.Course{ID: "crs-1"}, nil
	}}
	svc := newAcademyService(t, academy)

	course, err := svc.CourseDetail(context.Background(), CourseDetailInput{CourseID: " crs-1 "})
	require.NoError(t, err)
	require.Equal(t, "crs-1", course.ID)
}

func TestCourseDetail_ByName(t *testing.T) {
	academy := &mockAcademy{searchCourse: func(name string) (*domain.Course, error) {
		require.Equal(t, "micropigmentación", name)
		return &domain.Course{ID: "crs-2", Name: "Taller de micropigmentación"}, nil
	}}
	svc := newAcademyService(t, academy)

	course, err := svc.CourseDetail(context.Background(), CourseDetailInput{CourseName: "micropigmentación"})
	require.NoError(t, err)
	require.Equal(t, "crs-2", course.ID)
}

func TestCourseDetail_MissingIdentifier(t *testing.T) {
	svc := newAcademyService(t, &mockAcademy{})

	_, err := svc.CourseDetail(context.Background(), CourseDetailInput{})
	requireUsecaseError(t, err, ErrorInvalidInput, "missing_course_identifier")
}

func TestCourseDetail_NotFound(t *testing.T) {
	svc := newAcademyService(t, &mockAcademy{})

	_, err := svc.CourseDetail(context.Background(), CourseDetailInput{CourseID: "nope"})
	requireUsecaseError(t, err, ErrorNotFound, "course_not_found")
}

func TestUpcomingEvents_DefaultLimit(t *testing.T) {
	var got int
	academy := &mockAcademy{getUpcomingEvents: func(limit int) ([]domain.Event, error) {
		got = limit
		return nil, nil
	}}
	svc := newAcademyService(t, academy)

	events, err := svc.UpcomingEvents(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, events)
	require.Equal(t, 10, got)
}

func TestUpcomingEvents_UpstreamError(t *testing.T) {
	academy := &mockAcademy{getUpcomingEvents: func(int) ([]domain.Event, error) {
		return nil, errors.New("timeout")
	}}
	svc := newAcademyService(t, academy)

	_, err := svc.UpcomingEvents(context.Background(), 5)
	requireUsecaseError(t, err, ErrorUpstream, "crm_events_error")
}
