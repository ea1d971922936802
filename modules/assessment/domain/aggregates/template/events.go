package template

import "github.com/google/uuid"

type CreatedEvent struct {
	Result *Template
}

type UpdatedEvent struct {
	Result *Template
}

type DeletedEvent struct {
	ID uuid.UUID
}
