package templatectl

import (
	"fmt"
	"strings"

	"github.com/louisbranch/templatedesk/internal/services/templateadmin/templates"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/viewmodel"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/xsdscan"
)

// dependency is one -dep LOC=DEP flag.
type dependency struct {
	location string
	value    string
}

// dependencyFlag collects repeated -dep flags in order.
type dependencyFlag []dependency

func (d *dependencyFlag) String() string {
	parts := make([]string, 0, len(*d))
	for _, dep := range *d {
		parts = append(parts, dep.location+"="+dep.value)
	}
	return strings.Join(parts, ",")
}

func (d *dependencyFlag) Set(value string) error {
	loc, dep, ok := strings.Cut(value, "=")
	loc = strings.TrimSpace(loc)
	if !ok || loc == "" {
		return fmt.Errorf("dependency %q must look like LOC=DEP", value)
	}
	dep = strings.TrimSpace(dep)
	if dep == "" {
		dep = viewmodel.NoDependency
	}
	*d = append(*d, dependency{location: loc, value: dep})
	return nil
}

// buildDependencyPage lists the schema's references, in document order, as
// table rows. A -dep for a location the schema does not mention adds a row
// after the scanned ones.
func buildDependencyPage(raw string, name string, filename string, versionManager string, deps dependencyFlag) (templates.DependencyPage, error) {
	refs, err := xsdscan.ScanString(raw)
	if err != nil {
		return templates.DependencyPage{}, err
	}
	chosen := make(map[string]string, len(deps))
	for _, dep := range deps {
		chosen[dep.location] = dep.value
	}

	page := templates.DependencyPage{
		Name:     name,
		Filename: filename,
		XSD:      raw,
	}
	listed := map[string]bool{}
	for _, loc := range xsdscan.Locations(refs) {
		listed[loc] = true
		page.Rows = append(page.Rows, templates.DependencyRow{SchemaLocation: loc, Selected: chosen[loc]})
	}
	for _, dep := range deps {
		if listed[dep.location] {
			continue
		}
		listed[dep.location] = true
		page.Rows = append(page.Rows, templates.DependencyRow{SchemaLocation: dep.location, Selected: dep.value})
	}
	if versionManager != "" {
		page.VersionManagers = []templates.Option{{Value: versionManager}}
		page.VersionManager = versionManager
	}
	return page, nil
}
