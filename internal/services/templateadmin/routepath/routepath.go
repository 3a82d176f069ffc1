// Package routepath names the console endpoints the template actions call and
// builds their URLs with escaped query values.
package routepath

import (
	"net/url"
	"strings"
)

const (
	TemplatePrefix = "/admin/template/"
)

const (
	Disable             = TemplatePrefix + "disable"
	Restore             = TemplatePrefix + "restore"
	Edit                = TemplatePrefix + "edit"
	ResolveDependencies = TemplatePrefix + "resolve-dependencies"
)

// Templates is where the browser goes after dependencies resolve. It is
// relative on purpose: it resolves against the page that issued the request.
const Templates = "admin/templates"

const (
	ParamID    = "id"
	ParamTitle = "title"
)

func DisableTemplate(objectID string) string {
	return withQuery(Disable, url.Values{ParamID: {objectID}})
}

func RestoreTemplate(objectID string) string {
	return withQuery(Restore, url.Values{ParamID: {objectID}})
}

func EditTemplate(objectID string, title string) string {
	return withQuery(Edit, url.Values{ParamID: {objectID}, ParamTitle: {title}})
}

// ResolveAgainst resolves a route (absolute or relative) against the URL of
// the page the action runs on.
func ResolveAgainst(page *url.URL, route string) (*url.URL, error) {
	ref, err := url.Parse(route)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return ref, nil
	}
	return page.ResolveReference(ref), nil
}

// withQuery keeps the id parameter first so the wire format matches
// "?id=...&title=..."; url.Values.Encode sorts keys and "id" < "title".
func withQuery(path string, values url.Values) string {
	encoded := values.Encode()
	if encoded == "" {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&" + encoded
	}
	return path + "?" + encoded
}
