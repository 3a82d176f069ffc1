package templatectl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/text/message"

	"github.com/louisbranch/templatedesk/internal/services/templateadmin/actions"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/routepath"
)

// terminalDialogs asks dialog questions on a line-oriented terminal.
type terminalDialogs struct {
	in        *bufio.Reader
	out       io.Writer
	printer   *message.Printer
	assumeYes bool
	answers   map[string]string
	fields    map[string]string
}

func newTerminalDialogs(in io.Reader, out io.Writer, printer *message.Printer, assumeYes bool, answers map[string]string) *terminalDialogs {
	return &terminalDialogs{
		in:        bufio.NewReader(in),
		out:       out,
		printer:   printer,
		assumeYes: assumeYes,
		answers:   answers,
		fields:    map[string]string{},
	}
}

func (d *terminalDialogs) SetField(id string, value string) error {
	d.fields[id] = value
	return nil
}

func (d *terminalDialogs) Field(id string) (string, error) {
	value, ok := d.fields[id]
	if !ok {
		return "", fmt.Errorf("field %s not found", id)
	}
	return value, nil
}

// Open prints the dialog, fills its fields and reads a choice. Fields take a
// preset answer when one was given; an empty line keeps the current value.
// End of input picks the last choice, which is the negative one.
func (d *terminalDialogs) Open(ctx context.Context, dialog actions.Dialog) (actions.Choice, error) {
	if len(dialog.Choices) == 0 {
		return "", fmt.Errorf("dialog %s has no choices", dialog.ID)
	}
	d.println(d.printer.Sprintf(dialog.TitleKey))
	if dialog.PromptKey != "" {
		d.println(d.printer.Sprintf(dialog.PromptKey))
	}

	for _, field := range dialog.Fields {
		if answer, ok := d.answers[field]; ok {
			d.fields[field] = answer
			continue
		}
		if d.assumeYes {
			continue
		}
		d.print(fmt.Sprintf("%s [%s]: ", d.printer.Sprintf(actions.FieldLabelKey(field)), d.fields[field]))
		line, err := d.readLine(ctx)
		if err != nil {
			return d.negative(dialog, err)
		}
		if line != "" {
			d.fields[field] = line
		}
	}

	if d.assumeYes {
		return dialog.Choices[0], nil
	}
	labels := make([]string, 0, len(dialog.Choices))
	for _, choice := range dialog.Choices {
		labels = append(labels, d.printer.Sprintf(choice.LabelKey()))
	}
	prompt := d.printer.Sprintf("templateadmin.prompt.choose", "["+strings.Join(labels, "/")+"]")
	for {
		d.print(prompt)
		line, err := d.readLine(ctx)
		if err != nil {
			return d.negative(dialog, err)
		}
		if choice, ok := matchChoice(line, dialog.Choices, labels); ok {
			return choice, nil
		}
	}
}

func (d *terminalDialogs) Close(string) {}

func (d *terminalDialogs) negative(dialog actions.Dialog, err error) (actions.Choice, error) {
	if errors.Is(err, io.EOF) {
		d.println("")
		choice, _ := dialog.Dismissed()
		return choice, nil
	}
	return "", err
}

func (d *terminalDialogs) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := d.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (d *terminalDialogs) print(s string) {
	_, _ = io.WriteString(d.out, s)
}

func (d *terminalDialogs) println(s string) {
	_, _ = io.WriteString(d.out, s+"\n")
}

// matchChoice accepts a choice id, its label, or the label's first letter,
// ignoring case.
func matchChoice(input string, choices []actions.Choice, labels []string) (actions.Choice, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	for i, choice := range choices {
		label := labels[i]
		if strings.EqualFold(input, string(choice)) || strings.EqualFold(input, label) {
			return choice, true
		}
	}
	for i, choice := range choices {
		if first := []rune(labels[i]); len(first) > 0 && strings.EqualFold(input, string(first[0])) {
			return choice, true
		}
	}
	return "", false
}

// terminalPage reports page effects as text.
type terminalPage struct {
	out     io.Writer
	errOut  io.Writer
	printer *message.Printer
	base    *url.URL
}

func newTerminalPage(out io.Writer, errOut io.Writer, printer *message.Printer, base *url.URL) *terminalPage {
	return &terminalPage{out: out, errOut: errOut, printer: printer, base: base}
}

func (p *terminalPage) Reload() {
	_, _ = fmt.Fprintln(p.out, p.printer.Sprintf("templateadmin.page.reload"))
}

// Navigate prints where the browser would go. The terminal has no current
// page, so relative routes resolve against the console base URL.
func (p *terminalPage) Navigate(route string) {
	target := route
	if u, err := routepath.ResolveAgainst(p.base, route); err == nil {
		target = u.String()
	}
	_, _ = fmt.Fprintln(p.out, p.printer.Sprintf("templateadmin.page.navigate", target))
}

// ShowError writes the console's text exactly as received.
func (p *terminalPage) ShowError(_ string, text string) {
	_, _ = io.WriteString(p.errOut, text)
}
