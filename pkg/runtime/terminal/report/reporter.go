package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/de-tools/diag-audit/pkg/models/domain"
)

const separatorWidth = 58

// Reporter prints audit results to a terminal with three emphasis levels:
// neutral, enabled (green) and disabled or missing (red). Headers are yellow.
type Reporter struct {
	writer   io.Writer
	header   *color.Color
	enabled  *color.Color
	disabled *color.Color
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer, noColor bool) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}

	r := &Reporter{
		writer:   writer,
		header:   color.New(color.FgYellow, color.Bold),
		enabled:  color.New(color.FgHiGreen),
		disabled: color.New(color.FgHiRed),
	}
	if noColor {
		r.header.DisableColor()
		r.enabled.DisableColor()
		r.disabled.DisableColor()
	}
	return r
}

func (r *Reporter) SubscriptionAudited(sub domain.Subscription, result *domain.AuditResult) error {
	if err := r.banner(sub.Name); err != nil {
		return err
	}

	if result == nil {
		_, err := r.disabled.Fprintln(r.writer, "No resources found.")
		return err
	}

	for _, entry := range result.Entries() {
		if err := r.printResource(entry); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reporter) printResource(entry domain.ResourceAudit) error {
	if _, err := fmt.Fprintf(r.writer, "\n%s\n", entry.Resource.Name); err != nil {
		return err
	}

	for _, setting := range entry.Settings {
		if _, err := fmt.Fprintf(r.writer, "\t%s\n", setting.Name); err != nil {
			return err
		}
		for _, log := range setting.Logs {
			if err := r.printLog(log); err != nil {
				return err
			}
		}
	}

	if len(entry.Settings) > 0 {
		return nil
	}
	if _, err := r.disabled.Fprintln(r.writer, "\tNO LOGGING ENABLED"); err != nil {
		return err
	}
	if entry.Status == domain.FetchStatusError {
		_, err := r.header.Fprintf(r.writer, "\tdiagnostic settings could not be retrieved: %v\n", entry.Err)
		return err
	}
	return nil
}

func (r *Reporter) printLog(log domain.LogEntry) error {
	label := log.Label()
	if label == "" {
		_, err := fmt.Fprintf(r.writer, "\t\t%+v\n", log)
		return err
	}

	c := r.disabled
	if log.Enabled {
		c = r.enabled
	}
	_, err := c.Fprintf(r.writer, "\t\t%s\n", label)
	return err
}

func (r *Reporter) Summary(summaries []domain.SubscriptionSummary) error {
	if err := r.banner("SUMMARY"); err != nil {
		return err
	}
	if _, err := r.header.Fprintln(r.writer, "Resources with logging enabled:"); err != nil {
		return err
	}
	for _, s := range summaries {
		if _, err := r.header.Fprintf(r.writer, "\t%s\n", s); err != nil {
			return err
		}
	}
	for _, s := range summaries {
		if s.Failed == 0 {
			continue
		}
		if _, err := r.disabled.Fprintf(r.writer, "\t%s: %d resource(s) could not be retrieved\n",
			s.Subscription.Name, s.Failed); err != nil {
			return err
		}
	}
	_, err := r.header.Fprintf(r.writer, "\n%s\n\n", separator())
	return err
}

func (r *Reporter) banner(title string) error {
	_, err := r.header.Fprintf(r.writer, "\n%s\n%s\n%s\n\n", separator(), title, separator())
	return err
}

func separator() string {
	return strings.Repeat("-", separatorWidth)
}
