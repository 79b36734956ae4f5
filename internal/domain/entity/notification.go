package entity

import "time"

// Notification aviso para una sucursal (efecto lateral de crear un envío).
type Notification struct {
	ID        string
	BranchID  string
	Title     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
