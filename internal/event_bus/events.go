package event_bus

const (
	ScheduleCreatedType      EventType = "schedule.created"
	ScheduleUpdatedType      EventType = "schedule.updated"
	ScheduleDeletedType      EventType = "schedule.deleted"
	ParticipantRespondedType EventType = "schedule.participant.responded"
)

type ScheduleCreated struct {
	Uid     string
	OwnerId int
	Date    string
	Title   string
}

type ScheduleUpdated struct {
	Uid     string
	OwnerId int
}

type ScheduleDeleted struct {
	Uid     string
	OwnerId int
}

type ParticipantResponded struct {
	ScheduleUid string
	UserId      int
	Status      string
}
