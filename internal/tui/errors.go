package tui

import "fmt"

// errorMsg carries a failed side effect back to the event loop.
type errorMsg struct {
	err error
}

// wrapErr formats an error with a contextual prefix.
func wrapErr(context string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

func errorCmdMsg(context string, err error) errorMsg {
	return errorMsg{err: wrapErr(context, err)}
}
