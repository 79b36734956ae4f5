package repository

import "github.com/farmastock/backend/internal/domain/entity"

// NotificationRepository define el puerto de persistencia de avisos a sucursales.
type NotificationRepository interface {
	Create(notification *entity.Notification) error
	ListByBranch(branchID string, limit, offset int) ([]*entity.Notification, error)
	MarkRead(id string) error
}
