package services

import (
	"context"
	"errors"
	"time"

	"dayflow/domain"
	"dayflow/models"
	"dayflow/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrRequestNotFound = errors.New("leave: request not found")
	ErrAlreadyDecided  = errors.New("leave: request is no longer pending")
	ErrInvalidDecision = errors.New("leave: decision must be Approved or Rejected")
)

type LeaveService struct {
	repo repository.LeaveRepository
	now  func() time.Time
}

func NewLeaveService(repo repository.LeaveRepository) *LeaveService {
	return &LeaveService{repo: repo, now: time.Now}
}

// Submit files a Pending request for the user. Date ordering and leave
// balance are deliberately not validated.
func (s *LeaveService) Submit(ctx context.Context, user *domain.User, typ domain.LeaveType, start, end time.Time, remarks string) (*domain.LeaveRequest, error) {
	row := domain.LeaveToRow(&domain.LeaveRequest{
		UserID:    user.ID,
		UserName:  user.FullName,
		Type:      typ,
		StartDate: domain.DateOnly(start),
		EndDate:   domain.DateOnly(end),
		Remarks:   remarks,
		Status:    domain.LeavePending,
	})
	row.ID = uuid.New()
	row.CreatedAt = s.now().UTC()
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}
	return domain.LeaveFromRow(row)
}

// Decide moves a Pending request to Approved or Rejected, optionally
// attaching a comment. The transition is terminal: deciding a request
// twice fails and leaves it unchanged. The store-side update carries the
// same Pending precondition.
func (s *LeaveService) Decide(ctx context.Context, id uuid.UUID, status domain.LeaveStatus, comment string) (*domain.LeaveRequest, error) {
	if status != domain.LeaveApproved && status != domain.LeaveRejected {
		return nil, ErrInvalidDecision
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrRequestNotFound
	}
	if row.Status != string(domain.LeavePending) {
		return nil, ErrAlreadyDecided
	}

	var c *string
	if comment != "" {
		c = &comment
	}
	affected, err := s.repo.Decide(ctx, id, string(status), c)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAlreadyDecided
	}

	row.Status = string(status)
	row.AdminComment = c
	return domain.LeaveFromRow(row)
}

// ListFor is the role-scoped fetch: admins get the full set through the
// dedicated admin query, employees only their own requests.
func (s *LeaveService) ListFor(ctx context.Context, user *domain.User) ([]domain.LeaveRequest, error) {
	var rows []models.LeaveRequest
	var err error
	if user.IsAdmin() {
		rows, err = s.repo.List(ctx)
	} else {
		rows, err = s.repo.ListByUser(ctx, user.ID)
	}
	if err != nil {
		return nil, err
	}

	requests := make([]domain.LeaveRequest, 0, len(rows))
	for i := range rows {
		req, err := domain.LeaveFromRow(&rows[i])
		if err != nil {
			logrus.WithError(err).WithField("request_id", rows[i].ID).Warn("Skipping unmappable leave row")
			continue
		}
		requests = append(requests, *req)
	}
	return requests, nil
}

func (s *LeaveService) CountPending(ctx context.Context) (int64, error) {
	return s.repo.CountByStatus(ctx, string(domain.LeavePending))
}
