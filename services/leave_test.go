package services

import (
	"context"
	"testing"
	"time"

	"dayflow/domain"
	"dayflow/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newLeaveService(t *testing.T, now time.Time) (*LeaveService, repository.LeaveRepository) {
	t.Helper()
	repo := repository.NewGormLeaveRepository(newTestDB(t))
	svc := NewLeaveService(repo)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	now := time.Date(2024, 5, 22, 10, 0, 0, 0, time.UTC)
	svc, repo := newLeaveService(t, now)
	user := &domain.User{ID: uuid.New(), FullName: "Rahul Verma"}

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	req, err := svc.Submit(context.Background(), user, domain.LeavePaid, start, end, "Family vacation to Goa")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, req.ID)
	require.Equal(t, user.ID, req.UserID)
	require.Equal(t, "Rahul Verma", req.UserName)
	require.Equal(t, domain.LeavePaid, req.Type)
	require.Equal(t, domain.LeavePending, req.Status)
	require.Equal(t, start, req.StartDate)
	require.Equal(t, end, req.EndDate)
	require.Empty(t, req.AdminComment)
	require.True(t, req.CreatedAt.Equal(now))

	// The stored row carries exactly the shape an insert-bound conversion
	// of the returned request produces.
	row, err := repo.GetByID(context.Background(), req.ID)
	require.NoError(t, err)
	want := domain.LeaveToRow(req)
	require.Equal(t, want.UserID, row.UserID)
	require.Equal(t, want.UserName, row.UserName)
	require.Equal(t, want.Type, row.Type)
	require.Equal(t, want.Status, row.Status)
	require.True(t, want.StartDate.Equal(row.StartDate))
	require.True(t, want.EndDate.Equal(row.EndDate))
	require.Equal(t, want.Remarks, row.Remarks)
	require.Nil(t, row.AdminComment)
}

func TestDecideApprovesPendingRequest(t *testing.T) {
	now := time.Date(2024, 5, 22, 10, 0, 0, 0, time.UTC)
	svc, _ := newLeaveService(t, now)
	user := &domain.User{ID: uuid.New(), FullName: "Rahul Verma"}

	req, err := svc.Submit(context.Background(), user, domain.LeavePaid, now, now, "vacation")
	require.NoError(t, err)

	decided, err := svc.Decide(context.Background(), req.ID, domain.LeaveApproved, "ok")
	require.NoError(t, err)
	require.Equal(t, domain.LeaveApproved, decided.Status)
	require.Equal(t, "ok", decided.AdminComment)
}

func TestDecideIsTerminal(t *testing.T) {
	now := time.Date(2024, 5, 22, 10, 0, 0, 0, time.UTC)
	svc, repo := newLeaveService(t, now)
	user := &domain.User{ID: uuid.New(), FullName: "Rahul Verma"}

	req, err := svc.Submit(context.Background(), user, domain.LeavePaid, now, now, "vacation")
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), req.ID, domain.LeaveApproved, "ok")
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), req.ID, domain.LeaveRejected, "")
	require.ErrorIs(t, err, ErrAlreadyDecided)

	row, err := repo.GetByID(context.Background(), req.ID)
	require.NoError(t, err)
	require.Equal(t, string(domain.LeaveApproved), row.Status)
	require.NotNil(t, row.AdminComment)
	require.Equal(t, "ok", *row.AdminComment)
}

func TestDecideValidation(t *testing.T) {
	now := time.Date(2024, 5, 22, 10, 0, 0, 0, time.UTC)
	svc, _ := newLeaveService(t, now)
	user := &domain.User{ID: uuid.New(), FullName: "Rahul Verma"}

	req, err := svc.Submit(context.Background(), user, domain.LeaveSick, now, now, "")
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), req.ID, domain.LeavePending, "")
	require.ErrorIs(t, err, ErrInvalidDecision)

	_, err = svc.Decide(context.Background(), uuid.New(), domain.LeaveApproved, "")
	require.ErrorIs(t, err, ErrRequestNotFound)
}

func TestDecideWithoutComment(t *testing.T) {
	now := time.Date(2024, 5, 22, 10, 0, 0, 0, time.UTC)
	svc, repo := newLeaveService(t, now)
	user := &domain.User{ID: uuid.New(), FullName: "Rahul Verma"}

	req, err := svc.Submit(context.Background(), user, domain.LeaveUnpaid, now, now, "")
	require.NoError(t, err)

	decided, err := svc.Decide(context.Background(), req.ID, domain.LeaveRejected, "")
	require.NoError(t, err)
	require.Equal(t, domain.LeaveRejected, decided.Status)
	require.Empty(t, decided.AdminComment)

	row, err := repo.GetByID(context.Background(), req.ID)
	require.NoError(t, err)
	require.Nil(t, row.AdminComment)
}

func TestListForScopesLeavesByRole(t *testing.T) {
	now := time.Date(2024, 5, 22, 10, 0, 0, 0, time.UTC)
	svc, _ := newLeaveService(t, now)

	employee := &domain.User{ID: uuid.New(), FullName: "Rahul Verma", Role: domain.RoleEmployee}
	other := &domain.User{ID: uuid.New(), FullName: "Priya Nair", Role: domain.RoleEmployee}
	admin := &domain.User{ID: uuid.New(), FullName: "Sarita Sharma", Role: domain.RoleAdmin}

	_, err := svc.Submit(context.Background(), employee, domain.LeavePaid, now, now, "")
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), other, domain.LeaveSick, now, now, "")
	require.NoError(t, err)

	own, err := svc.ListFor(context.Background(), employee)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, employee.ID, own[0].UserID)

	all, err := svc.ListFor(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, all, 2)

	pending, err := svc.CountPending(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 2, pending)
}
