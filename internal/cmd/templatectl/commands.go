package templatectl

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	apperrors "github.com/louisbranch/templatedesk/internal/platform/errors"
	"github.com/louisbranch/templatedesk/internal/platform/i18n"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/dom"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/dom/htmldoc"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/templates"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/viewmodel"
)

type command struct {
	usage string
	run   func(ctx context.Context, env *runtime, args []string) error
}

// commands is filled in init: the run functions read it back for usage text.
var commands map[string]command

func init() {
	commands = map[string]command{
		"disable": {usage: "disable -id ID", run: runDisable},
		"restore": {usage: "restore -id ID", run: runRestore},
		"edit":    {usage: "edit -id ID (-name CURRENT | -page FILE) [-title NEW]", run: runEdit},
		"resolve": {usage: "resolve (-page FILE | -xsd FILE [-name N] [-filename F] [-dep LOC=DEP]... [-version-manager ID])", run: runResolve},
		"page":    {usage: "page -xsd FILE [-name N] [-filename F] [-dep LOC=DEP]... [-version-manager ID] [-out FILE]", run: runPage},
		"history": {usage: "history [-limit N]", run: runHistory},
	}
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newFlagSet(env *runtime, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.stdio.Err)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(env.stdio.Err, "usage: templatectl %s\n", commands[name].usage)
		fs.PrintDefaults()
	}
	return fs
}

func runDisable(ctx context.Context, env *runtime, args []string) error {
	fs := newFlagSet(env, "disable")
	id := fs.String("id", "", "Template object id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ctrl, err := env.controller(ctx, nil)
	if err != nil {
		return err
	}
	ctx, cancel := env.actionContext(ctx)
	defer cancel()
	return finish(ctrl.DisableTemplate(ctx, viewmodel.TemplateRef{ObjectID: *id}))
}

func runRestore(ctx context.Context, env *runtime, args []string) error {
	fs := newFlagSet(env, "restore")
	id := fs.String("id", "", "Template object id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ctrl, err := env.controller(ctx, nil)
	if err != nil {
		return err
	}
	ctx, cancel := env.actionContext(ctx)
	defer cancel()
	return finish(ctrl.RestoreTemplate(ctx, viewmodel.TemplateRef{ObjectID: *id}))
}

func runEdit(ctx context.Context, env *runtime, args []string) error {
	fs := newFlagSet(env, "edit")
	id := fs.String("id", "", "Template object id")
	name := fs.String("name", "", "Name currently shown for the template")
	pagePath := fs.String("page", "", "Saved template list to read the current name from")
	title := fs.String("title", "", "New name; prompted for when not set")
	if err := fs.Parse(args); err != nil {
		return err
	}
	trigger := viewmodel.EditTrigger{ObjectID: *id, CurrentName: *name}
	if *pagePath != "" {
		if isSet(fs, "name") {
			return errors.New("-page and -name are mutually exclusive")
		}
		captured, err := editTriggerFromPage(*pagePath, *id)
		if err != nil {
			return err
		}
		trigger = captured
	}
	var answers map[string]string
	if isSet(fs, "title") {
		answers = map[string]string{dom.FieldEditName: *title}
	}
	ctrl, err := env.controller(ctx, answers)
	if err != nil {
		return err
	}
	ctx, cancel := env.actionContext(ctx)
	defer cancel()
	return finish(ctrl.EditInformation(ctx, trigger))
}

// editTriggerFromPage finds the edit trigger for objectID on a saved template
// list and captures it the way a click would.
func editTriggerFromPage(path string, objectID string) (viewmodel.EditTrigger, error) {
	f, err := os.Open(path)
	if err != nil {
		return viewmodel.EditTrigger{}, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()
	doc, err := htmldoc.Parse(f)
	if err != nil {
		return viewmodel.EditTrigger{}, err
	}
	found := doc.Query(func(el dom.Element) bool {
		id, ok := el.Attr(dom.AttrObjectID)
		return ok && id == objectID && dom.HasClass(el, dom.ClassEdit)
	})
	if len(found) == 0 {
		return viewmodel.EditTrigger{}, apperrors.New(apperrors.CodePageElementMissing,
			fmt.Sprintf("no edit trigger for %q in %s", objectID, path))
	}
	return dom.CaptureEditTrigger(found[0])
}

type pageFlags struct {
	xsd            string
	name           string
	filename       string
	versionManager string
	deps           dependencyFlag
}

func (p *pageFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&p.xsd, "xsd", "", "Schema file to upload")
	fs.StringVar(&p.name, "name", "", "Template name")
	fs.StringVar(&p.filename, "filename", "", "File name shown to the console (default: base name of -xsd)")
	fs.StringVar(&p.versionManager, "version-manager", "", "Existing version manager id")
	fs.Var(&p.deps, "dep", "Dependency for a schema location as LOC=DEP; LOC= leaves it unresolved (repeatable)")
}

func (p *pageFlags) page() (templates.DependencyPage, error) {
	if p.xsd == "" {
		return templates.DependencyPage{}, errors.New("-xsd is required")
	}
	raw, err := os.ReadFile(p.xsd)
	if err != nil {
		return templates.DependencyPage{}, fmt.Errorf("read schema: %w", err)
	}
	filename := p.filename
	if filename == "" {
		filename = filepath.Base(p.xsd)
	}
	return buildDependencyPage(string(raw), p.name, filename, p.versionManager, p.deps)
}

func renderPage(env *runtime, page templates.DependencyPage) ([]byte, error) {
	var buf bytes.Buffer
	lang := i18n.ResolveTag(env.cfg.Lang).String()
	doc := templates.Document(lang, env.printer.Sprintf("templateadmin.resolve.title"),
		templates.DependencyForm(env.printer, page))
	if err := doc.Render(context.Background(), &buf); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

func runResolve(ctx context.Context, env *runtime, args []string) error {
	fs := newFlagSet(env, "resolve")
	pagePath := fs.String("page", "", "Saved dependency page to submit")
	var pf pageFlags
	pf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	var source io.Reader
	switch {
	case *pagePath != "" && pf.xsd != "":
		return errors.New("-page and -xsd are mutually exclusive")
	case *pagePath != "":
		f, err := os.Open(*pagePath)
		if err != nil {
			return fmt.Errorf("open page: %w", err)
		}
		defer f.Close()
		source = f
	default:
		page, err := pf.page()
		if err != nil {
			return err
		}
		markup, err := renderPage(env, page)
		if err != nil {
			return err
		}
		source = bytes.NewReader(markup)
	}

	doc, err := htmldoc.Parse(source)
	if err != nil {
		return err
	}
	req, err := dom.CaptureDependencyRequest(doc)
	if err != nil {
		return err
	}
	for _, row := range req.Rows() {
		env.logger().Printf("resolve %s -> %s", row.SchemaLocation, row.Dependency)
	}
	ctrl, err := env.controller(ctx, nil)
	if err != nil {
		return err
	}
	ctx, cancel := env.actionContext(ctx)
	defer cancel()
	return finish(ctrl.ResolveDependencies(ctx, req))
}

func runPage(_ context.Context, env *runtime, args []string) error {
	fs := newFlagSet(env, "page")
	out := fs.String("out", "", "Write the page to this file instead of stdout")
	var pf pageFlags
	pf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	page, err := pf.page()
	if err != nil {
		return err
	}
	markup, err := renderPage(env, page)
	if err != nil {
		return err
	}
	if *out == "" {
		_, err := env.stdio.Out.Write(markup)
		return err
	}
	if err := os.WriteFile(*out, markup, 0o644); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

func runHistory(ctx context.Context, env *runtime, args []string) error {
	fs := newFlagSet(env, "history")
	limit := fs.Int("limit", 20, "Entries to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	store, err := env.journalStore(ctx)
	if err != nil {
		return err
	}
	entries, err := store.ListEntries(ctx, *limit)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		objectID := entry.ObjectID
		if objectID == "" {
			objectID = "-"
		}
		line := fmt.Sprintf("%s\t%s\t%s\t%s", entry.OccurredAt.Format(time.RFC3339), entry.Operation, objectID, entry.Result)
		if entry.Detail != "" {
			line += "\t" + entry.Detail
		}
		if _, err := fmt.Fprintln(env.stdio.Out, line); err != nil {
			return err
		}
	}
	return nil
}

func isSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
