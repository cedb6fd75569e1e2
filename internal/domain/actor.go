package domain

// Role is the family role an actor acts under.
type Role string

// Family roles supplied by the identity layer.
const (
	RoleParent   Role = "PARENT"
	RoleChild    Role = "CHILD"
	RoleRelative Role = "RELATIVE"
	RoleSystem   Role = "SYSTEM"
)

// Actor identifies who initiated a ledger mutation. The identity layer
// authenticates it; the ledger only records it.
type Actor struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// SchedulerActor stamps entries created by the recurring payment scheduler.
var SchedulerActor = Actor{Name: "scheduler", Role: RoleSystem}

// InterestActor stamps entries created by the interest engine.
var InterestActor = Actor{Name: "interest", Role: RoleSystem}
