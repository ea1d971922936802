package position

type CreatedEvent struct {
	Result *Position
}

type UpdatedEvent struct {
	Result *Position
}

type DeletedEvent struct {
	ID uint
}
