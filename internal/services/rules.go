package services

// Challenge rules. Fines are Chilean pesos. The family roster is fixed at
// four members, which is why three non-owner voters resolve a flag.
const (
	WeeklyGoal         = 3
	BaseFine           = 5000
	MaxFine            = 40000
	ExtraLifeThreshold = 5
	ShieldStreak       = 4
	FamilySize         = 4
	VoteQuorum         = 3
	MinExcuseLength    = 15
)
