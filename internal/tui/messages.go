package tui

// NavigateMsg switches the screen to a route
type NavigateMsg struct {
	Route Route
}

// StatusMsg shows a transient message in the footer
type StatusMsg struct {
	Text  string
	IsErr bool
}

// ClearStatusMsg clears the footer message
type ClearStatusMsg struct{}

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}
