package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// ProgressBar renders "title [████░░░░] 3/10" on a single, rewritten line.
// It is also an io.Writer: log lines written through it are placed below the
// bar, which is redrawn afterwards.
type ProgressBar struct {
	mu        sync.Mutex
	writer    io.Writer
	width     int
	title     string
	total     int
	current   int
	active    bool
	dirty     bool // bar drawn without a trailing newline
	startTime time.Time
	fill      *color.Color
	label     *color.Color
}

func NewProgressBar(writer io.Writer, noColor bool) *ProgressBar {
	if writer == nil {
		writer = os.Stderr
	}
	p := &ProgressBar{
		writer: writer,
		width:  30,
		fill:   color.New(color.FgGreen),
		label:  color.New(color.FgCyan),
	}
	if noColor {
		p.fill.DisableColor()
		p.label.DisableColor()
	}
	return p
}

func (p *ProgressBar) Start(title string, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.title = title
	p.total = total
	p.current = 0
	p.active = true
	p.startTime = time.Now()
	p.render()
}

func (p *ProgressBar) Advance() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current < p.total {
		p.current++
	}
	p.render()
}

func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = p.total
	p.render()
	p.breakLine()
	p.active = false
}

func (p *ProgressBar) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.breakLine()
	n, err := p.writer.Write(b)
	if p.active {
		p.render()
	}
	return n, err
}

func (p *ProgressBar) breakLine() {
	if p.dirty {
		fmt.Fprintln(p.writer)
		p.dirty = false
	}
}

func (p *ProgressBar) render() {
	if p.total == 0 {
		return
	}

	filled := p.current * p.width / p.total

	var bar strings.Builder
	bar.WriteString("\r")
	bar.WriteString(p.label.Sprint("[+] " + p.title))
	bar.WriteString(" [")
	bar.WriteString(p.fill.Sprint(strings.Repeat("█", filled)))
	bar.WriteString(strings.Repeat("░", p.width-filled))
	bar.WriteString("]")
	bar.WriteString(fmt.Sprintf(" %d/%d", p.current, p.total))
	bar.WriteString(fmt.Sprintf(" %s", time.Since(p.startTime).Round(time.Second)))

	fmt.Fprint(p.writer, bar.String())
	p.dirty = true
}
