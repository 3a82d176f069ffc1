package actions

import "fmt"

// Result is how an action ended.
type Result string

const (
	ResultCancelled Result = "cancelled"
	ResultReloaded  Result = "reloaded"
	ResultNavigated Result = "navigated"
	ResultFailed    Result = "failed"
)

// Outcome describes one finished action.
type Outcome struct {
	Operation string
	ObjectID  string
	Result    Result
	// Detail is free text for the journal, e.g. the failure message.
	Detail string
	Err    error
}

// Failed reports whether the action ended in failure.
func (o Outcome) Failed() bool {
	return o.Result == ResultFailed
}

func (o Outcome) String() string {
	if o.ObjectID == "" {
		return fmt.Sprintf("%s: %s", o.Operation, o.Result)
	}
	return fmt.Sprintf("%s %s: %s", o.Operation, o.ObjectID, o.Result)
}
