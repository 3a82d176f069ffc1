package dom

import "github.com/louisbranch/templatedesk/internal/services/templateadmin/viewmodel"

// Action names what a click on a trigger asks for.
type Action int

const (
	ActionNone Action = iota
	ActionDisable
	ActionRestore
	ActionEdit
	ActionResolve
)

func (a Action) String() string {
	switch a {
	case ActionDisable:
		return "disable"
	case ActionRestore:
		return "restore"
	case ActionEdit:
		return "edit"
	case ActionResolve:
		return "resolve dependencies"
	default:
		return "none"
	}
}

// Click is what one click on a trigger captured. Only the field matching
// Action is set.
type Click struct {
	Action  Action
	Ref     viewmodel.TemplateRef
	Edit    viewmodel.EditTrigger
	Resolve viewmodel.DependencyResolutionRequest
}

// CaptureClick classifies trigger and captures what its action needs. It must
// run while the event is current: the values sent are the ones shown when the
// user clicked. Elements that start no action yield ActionNone.
func CaptureClick(doc Document, trigger Element) (Click, error) {
	if trigger == nil {
		return Click{}, nil
	}
	switch {
	case HasClass(trigger, ClassDisable):
		ref, err := CaptureTemplateRef(trigger)
		if err != nil {
			return Click{}, err
		}
		return Click{Action: ActionDisable, Ref: ref}, nil
	case HasClass(trigger, ClassRestore):
		ref, err := CaptureTemplateRef(trigger)
		if err != nil {
			return Click{}, err
		}
		return Click{Action: ActionRestore, Ref: ref}, nil
	case HasClass(trigger, ClassEdit):
		edit, err := CaptureEditTrigger(trigger)
		if err != nil {
			return Click{}, err
		}
		return Click{Action: ActionEdit, Edit: edit}, nil
	}
	if id, _ := trigger.Attr("id"); id != ButtonResolve {
		return Click{}, nil
	}
	req, err := CaptureDependencyRequest(doc)
	if err != nil {
		return Click{}, err
	}
	return Click{Action: ActionResolve, Resolve: req}, nil
}
