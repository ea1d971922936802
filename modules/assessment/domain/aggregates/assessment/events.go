package assessment

import "github.com/google/uuid"

type CreatedEvent struct {
	Result *Assessment
}

type SubmittedEvent struct {
	Result *Assessment
	Actor  string
}

type ReopenedEvent struct {
	Result *Assessment
	Actor  string
}

type DeletedEvent struct {
	ID         uuid.UUID
	EmployeeID uuid.UUID
}
