package member

import "time"

type NewMember struct {
	ID        string
	Name      string
	Number    string
	Status    string
	CreatedAt time.Time
}

const StatusPending = "pending"
