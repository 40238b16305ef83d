package usecase

import (
	"context"
	"errors"
	"strings"

	"academy-concierge/internal/domain"
)

// AcademyService backs the direct course and event endpoints.
type AcademyService struct {
	academy AcademyProvider
}

func NewAcademyService(academy AcademyProvider) (*AcademyService, error) {
	if academy == nil {
		return nil, errors.New("usecase: academy provider must not be nil")
	}
	return &AcademyService{academy: academy}, nil
}

type ListCoursesInput struct {
	Category string
	Search   string
	Limit    int
}

func (s *AcademyService) ListCourses(ctx context.Context, in ListCoursesInput) ([]domain.Course, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultEndpointLimit
	}
	courses, err := s.academy.GetCourses(ctx, domain.CourseQuery{
		Category: in.Category,
		Search:   in.Search,
		Limit:    limit,
	})
	if err != nil {
		return nil, newError(ErrorUpstream, "crm_courses_error", err)
	}
	return courses, nil
}

type CourseDetailInput struct {
	CourseID   string
	CourseName string
}

func (s *AcademyService) CourseDetail(ctx context.Context, in CourseDetailInput) (*domain.Course, error) {
	var (
		course *domain.Course
		err    error
	)
	switch {
	case strings.TrimSpace(in.CourseID) != "":
		course, err = s.academy.GetCourseByID(ctx, strings.TrimSpace(in.CourseID))
	case strings.TrimSpace(in.CourseName) != "":
		course, err = s.academy.SearchCourse(ctx, strings.TrimSpace(in.CourseName))
	default:
		return nil, newError(ErrorInvalidInput, "missing_course_identifier", nil)
	}
	if err != nil {
		return nil, newError(ErrorUpstream, "crm_course_error", err)
	}
	if course == nil {
		return nil, newError(ErrorNotFound, "course_not_found", nil)
	}
	return course, nil
}

func (s *AcademyService) UpcomingEvents(ctx context.Context, limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = 10
	}
	events, err := s.academy.GetUpcomingEvents(ctx, limit)
	if err != nil {
		return nil, newError(ErrorUpstream, "crm_events_error", err)
	}
	return events, nil
}
