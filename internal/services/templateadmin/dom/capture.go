package dom

import (
	"strings"

	apperrors "github.com/louisbranch/templatedesk/internal/platform/errors"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/viewmodel"
)

// CaptureTemplateRef reads the object id from the element the user clicked.
func CaptureTemplateRef(trigger Element) (viewmodel.TemplateRef, error) {
	if trigger == nil {
		return viewmodel.TemplateRef{}, apperrors.New(apperrors.CodePageElementMissing, "trigger element is required")
	}
	objectID, _ := trigger.Attr(AttrObjectID)
	ref := viewmodel.TemplateRef{ObjectID: objectID}
	if err := ref.Validate(); err != nil {
		return viewmodel.TemplateRef{}, err
	}
	return ref, nil
}

// CaptureEditTrigger reads the object id from the clicked element and the
// displayed name from the first sibling of its parent, i.e. the first cell of
// the row whose action cell holds the trigger.
func CaptureEditTrigger(trigger Element) (viewmodel.EditTrigger, error) {
	ref, err := CaptureTemplateRef(trigger)
	if err != nil {
		return viewmodel.EditTrigger{}, err
	}
	out := viewmodel.EditTrigger{ObjectID: ref.ObjectID}
	if nameCell := FirstSibling(trigger.Parent()); nameCell != nil {
		out.CurrentName = nameCell.Text()
	}
	return out, nil
}

// CaptureDependencyRequest builds the resolution request from the page.
//
// Every tr under the dependencies table except the first (the header) is one
// row, in document order. Missing cells and holders read as empty strings, the
// same thing the console receives from a browser in that case.
func CaptureDependencyRequest(doc Document) (viewmodel.DependencyResolutionRequest, error) {
	if doc == nil {
		return viewmodel.DependencyResolutionRequest{}, apperrors.New(apperrors.CodePageElementMissing, "document is required")
	}

	var req viewmodel.DependencyResolutionRequest
	rows := FindAll(doc.ElementByID(TableDependencies), byTag("tr"))
	if len(rows) > 0 {
		rows = rows[1:]
	}
	for _, row := range rows {
		req.AddRow(
			innerHTML(FindFirst(row, byClass(ClassSchemaLocation))),
			value(FindFirst(row, byClass(ClassDependency))),
		)
	}

	req.XSDContent = innerHTML(doc.ElementByID(ContentXSD))
	req.Name = value(doc.ElementByID(FieldName))
	req.Filename = innerHTML(doc.ElementByID(ContentFilename))
	req.VersionManagerID = strings.TrimSpace(value(doc.ElementByID(FieldVersionManager)))
	return req, nil
}

func innerHTML(el Element) string {
	if el == nil {
		return ""
	}
	return el.InnerHTML()
}

func value(el Element) string {
	if el == nil {
		return ""
	}
	return el.Value()
}
