package domain

import "time"

type Notification struct {
	ID          int64
	Login       string
	Title       string
	Description string
	CreatedAt   time.Time
}
