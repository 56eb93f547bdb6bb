package valueobjects

// ProjectStatus is the workflow state shown on a project card
type ProjectStatus string

const (
	StatusOnTrack    ProjectStatus = "On Track"
	StatusAtRisk     ProjectStatus = "At Risk"
	StatusOffTrack   ProjectStatus = "Off Track"
	StatusNoUpdates  ProjectStatus = "No updates"
	StatusDone       ProjectStatus = "Done"
	StatusBacklog    ProjectStatus = "Backlog"
	StatusTodo       ProjectStatus = "Todo"
	StatusInProgress ProjectStatus = "In Progress"
)

// DefaultProjectStatus is applied on create and whenever an update omits status
const DefaultProjectStatus = StatusOnTrack

var projectStatuses = []ProjectStatus{
	StatusOnTrack,
	StatusAtRisk,
	StatusOffTrack,
	StatusNoUpdates,
	StatusDone,
	StatusBacklog,
	StatusTodo,
	StatusInProgress,
}

// IsValid reports whether s is a known status
func (s ProjectStatus) IsValid() bool {
	for _, known := range projectStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// OrDefault returns s, or the default status when s is empty
func (s ProjectStatus) OrDefault() ProjectStatus {
	if s == "" {
		return DefaultProjectStatus
	}
	return s
}

func (s ProjectStatus) String() string { return string(s) }

// ProjectStatusValues lists every known status in display order
func ProjectStatusValues() []string {
	values := make([]string, len(projectStatuses))
	for i, s := range projectStatuses {
		values[i] = string(s)
	}
	return values
}

// ProjectPriority ranks projects within an album
type ProjectPriority string

const (
	PriorityNone   ProjectPriority = "No priority"
	PriorityUrgent ProjectPriority = "Urgent"
	PriorityHigh   ProjectPriority = "High"
	PriorityMedium ProjectPriority = "Medium"
	PriorityLow    ProjectPriority = "Low"
)

// DefaultProjectPriority is applied on create and whenever an update omits priority
const DefaultProjectPriority = PriorityNone

var projectPriorities = []ProjectPriority{
	PriorityNone,
	PriorityUrgent,
	PriorityHigh,
	PriorityMedium,
	PriorityLow,
}

// IsValid reports whether p is a known priority
func (p ProjectPriority) IsValid() bool {
	for _, known := range projectPriorities {
		if p == known {
			return true
		}
	}
	return false
}

// OrDefault returns p, or the default priority when p is empty
func (p ProjectPriority) OrDefault() ProjectPriority {
	if p == "" {
		return DefaultProjectPriority
	}
	return p
}

func (p ProjectPriority) String() string { return string(p) }

// ProjectPriorityValues lists every known priority from none to low
func ProjectPriorityValues() []string {
	values := make([]string, len(projectPriorities))
	for i, p := range projectPriorities {
		values[i] = string(p)
	}
	return values
}
