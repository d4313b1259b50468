package reporter

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/wharflab/cheetah-lint/internal/rules"
	"github.com/wharflab/cheetah-lint/internal/sourcemap"
)

// Color detection using termenv (respects NO_COLOR, CLICOLOR_FORCE, terminal detection)
var useColors = termenv.EnvColorProfile() != termenv.Ascii

type textStyles struct {
	file      lipgloss.Style
	lineNum   lipgloss.Style
	separator lipgloss.Style
	marker    lipgloss.Style
	message   lipgloss.Style
	severity  map[rules.Severity]lipgloss.Style
}

func newTextStyles(renderer *lipgloss.Renderer) textStyles {
	return textStyles{
		file:      renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("252")), // Light gray
		lineNum:   renderer.NewStyle().Foreground(lipgloss.Color("240")),            // Dark gray
		separator: renderer.NewStyle().Foreground(lipgloss.Color("238")),            // Darker gray
		marker:    renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("196")), // Red
		message:   renderer.NewStyle().Foreground(lipgloss.Color("255")),            // White
		severity: map[rules.Severity]lipgloss.Style{
			rules.SeverityError:   renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("196")), // Red
			rules.SeverityWarning: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("214")), // Orange
			rules.SeverityInfo:    renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),  // Blue
			rules.SeverityStyle:   renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("245")), // Gray
		},
	}
}

// TextOptions configures the text reporter output.
type TextOptions struct {
	// Color enables/disables colored output. Default: auto-detect.
	Color *bool

	// SyntaxHighlight enables Cheetah syntax highlighting in snippets.
	SyntaxHighlight bool

	// ShowSource shows source code snippets below each finding.
	ShowSource bool

	// ChromaStyle is the Chroma style name for syntax highlighting.
	// Default: "monokai" for dark terminals, "github" for light.
	ChromaStyle string
}

// TextReporter prints one "path:line code message" line per finding.
type TextReporter struct {
	opts      TextOptions
	color     bool
	styles    textStyles
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
}

// NewTextReporter creates a new text reporter with the given options.
func NewTextReporter(opts TextOptions) *TextReporter {
	r := &TextReporter{opts: opts, color: useColors}
	if opts.Color != nil {
		r.color = *opts.Color
	}

	renderer := lipgloss.NewRenderer(io.Discard)
	if r.color {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
	r.styles = newTextStyles(renderer)

	if r.color && opts.SyntaxHighlight {
		r.lexer = lexers.Get("cheetah")
		if r.lexer == nil {
			r.lexer = lexers.Fallback
		}
		r.lexer = chroma.Coalesce(r.lexer)

		styleName := opts.ChromaStyle
		if styleName == "" {
			if lipgloss.HasDarkBackground() {
				styleName = "monokai"
			} else {
				styleName = "github"
			}
		}
		r.style = styles.Get(styleName)
		if r.style == nil {
			r.style = styles.Fallback
		}

		r.formatter = formatters.Get("terminal256")
		if r.formatter == nil {
			r.formatter = formatters.Fallback
		}
	}

	return r
}

// Print writes violations to w in canonical order.
func (r *TextReporter) Print(w io.Writer, violations []rules.Violation, sources map[string]string) error {
	for _, v := range SortViolations(violations) {
		if _, err := fmt.Fprintln(w, r.formatViolation(v)); err != nil {
			return err
		}
		if r.opts.ShowSource && v.HasKnownLine() {
			if source, ok := sources[v.File]; ok {
				r.printSource(w, v.Line, sourcemap.Split(source))
			}
		}
	}
	return nil
}

func (r *TextReporter) formatViolation(v rules.Violation) string {
	if !r.color {
		return fmt.Sprintf("%s:%d %s %s", v.File, v.Line, v.Code, v.Message)
	}
	sevStyle, ok := r.styles.severity[v.Severity]
	if !ok {
		sevStyle = r.styles.severity[rules.SeverityWarning]
	}
	return fmt.Sprintf("%s %s %s",
		r.styles.file.Render(fmt.Sprintf("%s:%d", v.File, v.Line)),
		sevStyle.Render(v.Code),
		r.styles.message.Render(v.Message))
}

// printSource renders the finding's line with two lines of context each side.
func (r *TextReporter) printSource(w io.Writer, line int, lines sourcemap.Lines) {
	if !lines.InRange(line) {
		return
	}
	const pad = 2
	start := max(1, line-pad)
	end := min(lines.Count(), line+pad)

	separator := "--------------------"
	if r.color {
		separator = r.styles.separator.Render("────────────────────")
	}
	fmt.Fprintln(w, separator)

	for i := start; i <= end; i++ {
		var lineNum string
		if r.color {
			lineNum = r.styles.lineNum.Render(fmt.Sprintf(" %3d │", i))
		} else {
			lineNum = fmt.Sprintf(" %3d |", i)
		}

		marker := "   "
		if i == line {
			marker = ">>>"
			if r.color {
				marker = r.styles.marker.Render(marker)
			}
		}

		content := lines.Text(i)
		if r.lexer != nil {
			content = r.highlightLine(content)
		}
		fmt.Fprintf(w, "%s %s %s\n", lineNum, marker, content)
	}

	fmt.Fprintln(w, separator)
}

// highlightLine applies syntax highlighting to a single line.
func (r *TextReporter) highlightLine(line string) string {
	iterator, err := r.lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var buf bytes.Buffer
	if err := r.formatter.Format(&buf, r.style, iterator); err != nil {
		return line
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// PrintTextPlain writes violations without any styling.
func PrintTextPlain(w io.Writer, violations []rules.Violation, sources map[string]string) error {
	noColor := false
	return NewTextReporter(TextOptions{Color: &noColor, ShowSource: sources != nil}).Print(w, violations, sources)
}
