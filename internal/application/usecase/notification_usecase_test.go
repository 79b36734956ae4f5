package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmastock/backend/internal/application/usecase"
	"github.com/farmastock/backend/internal/domain"
	"github.com/farmastock/backend/internal/domain/entity"
)

type fakeNotificationRepo struct {
	notifications []*entity.Notification
}

func (r *fakeNotificationRepo) Create(n *entity.Notification) error {
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *fakeNotificationRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Notification, error) {
	var list []*entity.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		n := r.notifications[i]
		if branchID != "" && n.BranchID != branchID {
			continue
		}
		list = append(list, n)
	}
	return list, nil
}

func (r *fakeNotificationRepo) MarkRead(id string) error {
	for _, n := range r.notifications {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return fmt.Errorf("%w: aviso %s", domain.ErrNotFound, id)
}

func TestNotification_ListPorSucursal(t *testing.T) {
	repo := &fakeNotificationRepo{}
	require.NoError(t, repo.Create(&entity.Notification{ID: "n1", BranchID: "b1", Title: "Nuevo envío", CreatedAt: time.Now()}))
	require.NoError(t, repo.Create(&entity.Notification{ID: "n2", BranchID: "b2", Title: "Nuevo envío", CreatedAt: time.Now()}))

	uc := usecase.NewNotificationUseCase(repo)
	list, err := uc.List(context.Background(), "b1", 50, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "n1", list[0].ID)
}

func TestNotification_MarkRead(t *testing.T) {
	repo := &fakeNotificationRepo{}
	require.NoError(t, repo.Create(&entity.Notification{ID: "n1", BranchID: "b1"}))

	uc := usecase.NewNotificationUseCase(repo)
	require.NoError(t, uc.MarkRead(context.Background(), "n1"))
	assert.True(t, repo.notifications[0].IsRead)

	assert.ErrorIs(t, uc.MarkRead(context.Background(), "no-existe"), domain.ErrNotFound)
}
