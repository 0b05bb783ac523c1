package entities

// TaskCategory classifies a synthesized backlog item.
type TaskCategory string

// Task categories.
const (
	TaskDocumentation TaskCategory = "documentation"
	TaskAutomation    TaskCategory = "automation"
	TaskFeature       TaskCategory = "feature"
	TaskMaintenance   TaskCategory = "maintenance"
)

// TaskPriority ranks a synthesized backlog item.
type TaskPriority string

// Task priorities.
const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task is one synthesized backlog item. Tasks are immutable value objects
// once created; they are never mutated after synthesis.
type Task struct {
	ID             string       `json:"id"`
	CreatedAt      string       `json:"createdAt"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Category       TaskCategory `json:"category"`
	Priority       TaskPriority `json:"priority"`
	EstimatedHours float64      `json:"estimatedHours"`
	TargetFiles    []string     `json:"targetFiles"`
}

// Valid reports whether the category is one of the known values.
func (c TaskCategory) Valid() bool {
	switch c {
	case TaskDocumentation, TaskAutomation, TaskFeature, TaskMaintenance:
		return true
	}
	return false
}

// Valid reports whether the priority is one of the known values.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
