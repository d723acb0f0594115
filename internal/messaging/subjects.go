package messaging

const (
	// SubjectWorkItems carries "index this contract" work items
	SubjectWorkItems = "imports.request"
	// SubjectResults carries job results published after each attempt
	SubjectResults = "imports.result"
)
