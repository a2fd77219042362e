package handler

type ContextKey string

var (
	JobCtx               ContextKey = "job"
	CrewMemberCtx        ContextKey = "crewMember"
	AvailabilityBlockCtx ContextKey = "availabilityBlock"
)
