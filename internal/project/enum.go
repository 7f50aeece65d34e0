package project

// Status is the progress state shared by projects, goals and tasks.
type Status string

const (
	NOT_STARTED Status = "Not Started"
	IN_PROGRESS Status = "In Progress"
	COMPLETED   Status = "Completed"
)

var AllStatuses = []Status{
	NOT_STARTED,
	IN_PROGRESS,
	COMPLETED,
}

func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}
