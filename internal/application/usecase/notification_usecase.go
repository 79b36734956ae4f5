package usecase

import (
	"context"

	"github.com/farmastock/backend/internal/domain/entity"
	"github.com/farmastock/backend/internal/domain/repository"
)

// NotificationUseCase consulta y marca avisos de sucursal.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// List devuelve los avisos, opcionalmente por sucursal, más recientes primero.
func (uc *NotificationUseCase) List(ctx context.Context, branchID string, limit, offset int) ([]*entity.Notification, error) {
	return uc.repo.ListByBranch(branchID, limit, offset)
}

// MarkRead marca un aviso como leído. Devuelve ErrNotFound si el aviso no existe.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id string) error {
	return uc.repo.MarkRead(id)
}
