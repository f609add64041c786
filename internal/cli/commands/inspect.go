package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jymfony/scriba/internal/catalog"
	"github.com/jymfony/scriba/internal/cli/ui"
	"github.com/jymfony/scriba/runtime/reflection"
)

const docblockPreview = 60

type inspectOptions struct {
	format string
}

// NewInspectCommand creates the inspect command
func NewInspectCommand() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect [class]",
		Short: "Show reflection data for a class",
		Long: `Show reflection data for a class.

The class may be given by id or by fully qualified name. Parameters and doc
comments are resolved the same way decorated code sees them at runtime.

Without a class argument, lists every class. On an interactive terminal you
are asked to pick one instead.`,
		Example: `  # List classes
  scriba inspect

  # Show one class by name
  scriba inspect App.Greeter

  # Machine-readable output
  scriba inspect App.Greeter --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "table", "Output format: table or json")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string, opts *inspectOptions) error {
	if opts.format != "table" && opts.format != "json" {
		return fmt.Errorf("unknown format %q (expected table or json)", opts.format)
	}

	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	cat := e.catalog()
	out := cmd.OutOrStdout()

	var ref string
	if len(args) == 1 {
		ref = args[0]
	} else {
		classes, err := cat.List(ctx)
		if err != nil {
			return err
		}
		if opts.format == "json" || !interactive() || len(classes) == 0 {
			return renderClassList(out, classes, opts.format)
		}
		if ref, err = selectClass(classes); err != nil {
			return err
		}
	}

	id, err := cat.Find(ctx, ref)
	if err != nil {
		var nf *catalog.NotFoundError
		if errors.As(err, &nf) {
			ui.ClassNotFound(nf.Ref, nf.Suggestions, color.NoColor).Write(cmd.ErrOrStderr())
		}
		return err
	}

	class, err := cat.Describe(id)
	if err != nil {
		return err
	}

	if opts.format == "json" {
		return writeJSON(out, class)
	}
	renderClass(out, class, color.NoColor)
	return nil
}

func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

func selectClass(classes []catalog.Summary) (string, error) {
	options := make([]string, len(classes))
	for i, c := range classes {
		options[i] = c.FQCN
	}

	var selected int
	prompt := &survey.Select{
		Message: "Select a class:",
		Options: options,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}
	return string(classes[selected].ID), nil
}

func renderClassList(w io.Writer, classes []catalog.Summary, format string) error {
	if format == "json" {
		return writeJSON(w, classes)
	}

	if len(classes) == 0 {
		ui.Message{Level: ui.LevelInfo, Title: "No classes", Detail: "The configured provider holds no reflection data.", NoColor: color.NoColor}.Write(w)
		return nil
	}

	table := ui.NewTable(w, color.NoColor, "ID", "Class", "Members")
	for _, c := range classes {
		table.AddRow(string(c.ID), c.FQCN, strconv.Itoa(c.Members))
	}
	table.Render()
	return nil
}

func renderClass(w io.Writer, class *catalog.Class, noColor bool) {
	ui.Header(w, class.FQCN, noColor)

	kv := ui.NewKeyValueTable(w, noColor)
	kv.AddRow("ID", string(class.ID))
	kv.AddRow("Class", class.ClassName)
	if class.Namespace != "" {
		kv.AddRow("Namespace", class.Namespace)
	}
	if class.Filename != "" {
		kv.AddRow("Filename", class.Filename)
	}
	if class.Docblock != "" {
		kv.AddRow("Docblock", previewDocblock(class.Docblock))
	}
	kv.Render()

	if len(class.Members) == 0 {
		return
	}

	fmt.Fprintln(w)
	ui.Header(w, "Members", noColor)
	table := ui.NewTable(w, noColor, "Index", "Kind", "Parameters", "Docblock")
	for _, m := range class.Members {
		table.AddRow(strconv.Itoa(m.Index), m.Kind, formatParameters(m.Parameters), previewDocblock(m.Docblock))
	}
	table.Render()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatParameters renders a parameter list in source-like form, e.g.
// `name = "world", {…}, ...rest`.
func formatParameters(params []reflection.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		var b strings.Builder
		if p.IsRestElement {
			b.WriteString("...")
		}

		switch {
		case p.IsObjectPattern:
			b.WriteString("{…}")
		case p.IsArrayPattern:
			b.WriteString("[…]")
		case p.Name != "":
			b.WriteString(p.Name)
		default:
			fmt.Fprintf(&b, "$%d", p.Index)
		}

		if p.HasDefault {
			b.WriteString(" = ")
			if p.DefaultSet {
				b.WriteString(formatDefault(p.Default))
			} else {
				b.WriteString("…")
			}
		}
		parts[i] = b.String()
	}
	return strings.Join(parts, ", ")
}

func formatDefault(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case *big.Int:
		return x.String() + "n"
	case reflection.Pattern:
		return x.String()
	}
	return fmt.Sprint(v)
}

// previewDocblock collapses a doc comment to one line for tables.
func previewDocblock(doc string) string {
	line := strings.Join(strings.Fields(doc), " ")
	if r := []rune(line); len(r) > docblockPreview {
		line = string(r[:docblockPreview-1]) + "…"
	}
	return line
}
