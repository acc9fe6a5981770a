package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/dexopt/internal/app"
	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/dexopt/internal/ui/output"
	"go.trai.ch/dexopt/internal/ui/style"
)

// OutcomeError reports a failed compilation that has already been rendered.
type OutcomeError struct {
	err error
}

func (e *OutcomeError) Error() string { return e.err.Error() }

func (e *OutcomeError) Unwrap() error { return e.err }

const labelWidth = 15

type printer struct {
	w io.Writer
	r *lipgloss.Renderer
}

func newPrinter(w io.Writer) *printer {
	return &printer{
		w: w,
		r: lipgloss.NewRenderer(w, termenv.WithProfile(output.ColorProfile(w))),
	}
}

func (p *printer) styled(s lipgloss.Style, text string) string {
	return s.Renderer(p.r).Render(text)
}

func (p *printer) line(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) field(label string, value any) {
	pad := max(labelWidth-len(label), 0)
	p.line("  %s%s %v", p.styled(style.Label, label), strings.Repeat(" ", pad), value)
}

func (p *printer) outcome(o domain.CompilationOutcome) {
	if o.Success {
		p.line("%s %s", p.styled(style.Success, style.Check+" "+string(o.Kind)), o.ArtifactPath)
		return
	}
	p.line("%s %s", p.styled(style.Failure, style.Cross+" "+string(o.Kind)), o.Diagnostic)
}

func (p *printer) artifact(s app.ArtifactStatus) {
	p.line("%s", p.styled(style.Title, s.Location.SourceFile))
	p.field("artifact", s.Location.Path)
	p.field("instruction set", s.Location.InstructionSet)
	if s.Valid {
		p.field("state", p.styled(style.Success, "compiled"))
	} else {
		p.field("state", p.styled(style.Notice, "not compiled"))
	}
}

func (p *printer) capabilities(r app.CapabilityReport) {
	p.line("%s %s", p.styled(style.Title, r.Provider), p.styled(style.Label, fmt.Sprintf("(sdk %d)", int(r.Version))))
	for _, c := range r.Capabilities {
		if c.Supported {
			p.line("  %s %s", p.styled(style.Success, style.Check), c.Name)
		} else {
			p.line("  %s %s", p.styled(style.Label, style.Circle), c.Name)
		}
	}
}

func (p *printer) daemon(s *ports.DaemonStatus) {
	if !s.Running {
		p.line("%s daemon is not running", p.styled(style.Label, style.Circle))
		return
	}
	p.line("%s daemon is running", p.styled(style.Success, style.Dot))
	p.field("pid", s.PID)
	p.field("uptime", s.Uptime.Round(time.Second))
	p.field("idle remaining", s.IdleRemaining.Round(time.Second))
	p.field("transactions", s.Transactions)
	p.field("modules", s.Modules)
}
