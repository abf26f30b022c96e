package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/fivetwenty-io/zayo-client/internal/constants"
	"github.com/fivetwenty-io/zayo-client/pkg/zayo"
)

var (
	titleStyle = color.New(color.FgHiWhite, color.Bold)

	urgencyStyles = map[zayo.CaseUrgency]*color.Color{
		zayo.UrgencyEmergency: color.New(color.FgRed, color.Bold),
		zayo.UrgencyDemand:    color.New(color.FgHiBlue),
		zayo.UrgencyPlanned:   color.New(color.FgHiYellow),
	}

	statusStyles = map[zayo.CaseStatus]*color.Color{
		zayo.StatusScheduled: color.New(color.FgHiYellow),
	}

	impactStyles = map[zayo.CaseImpact]*color.Color{
		zayo.ImpactServiceAffecting: color.New(color.FgRed, color.Bold),
	}

	inventoryStyles = map[zayo.InventoryStatus]*color.Color{
		zayo.InventoryActive:        color.New(color.FgHiGreen),
		zayo.InventoryPendingChange: color.New(color.FgHiYellow),
	}
)

func styled[K ~string](styles map[K]*color.Color, value string) string {
	if style, ok := styles[K(value)]; ok {
		return style.Sprint(value)
	}

	return value
}

// title returns "<plural> (n)" for more than one row, otherwise singular.
func title(singular, plural string, n int) string {
	if n > 1 {
		return fmt.Sprintf("%s (%d)", plural, n)
	}

	return singular
}

func writeTitle(w io.Writer, text string) {
	_, _ = fmt.Fprintln(w, titleStyle.Sprint(text))
}

// fold breaks s into lines of at most width runes.
func fold(s string, width int) string {
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return s
	}

	lines := make([]string, 0, len(runes)/width+1)

	for len(runes) > width {
		lines = append(lines, string(runes[:width]))
		runes = runes[width:]
	}

	lines = append(lines, string(runes))

	return strings.Join(lines, "\n")
}

// caseDates lists the primary dates with the earliest one's relative time.
func caseDates(c *zayo.Case, now time.Time) string {
	dates := c.PrimaryDates()
	if len(dates) == 0 {
		return constants.NotAvailable
	}

	out := strings.Join(dates, "\n")

	if first, err := time.Parse(constants.DateLayout, dates[0]); err == nil {
		out += "\n(" + humanize.RelTime(first, now, "ago", "from now") + ")"
	}

	return out
}

// sentAt renders a notification timestamp in local time.
func sentAt(date string, now time.Time) string {
	ts, err := time.Parse(constants.DateTimeLayout, date)
	if err != nil {
		return date
	}

	return ts.Local().Format("2006-01-02\n15:04:05") + "\n(" + humanize.RelTime(ts, now, "ago", "from now") + ")"
}

func renderCasesTable(w io.Writer, cases []zayo.Case, now time.Time) error {
	writeTitle(w, title("Case", "Cases", len(cases)))

	table := tablewriter.NewWriter(w)
	table.Header("Case #", "Urgency", "Status", "Impact", "Date(s)", "Location", "Start Time", "End Time", "Reason")

	for i := range cases {
		c := &cases[i]

		urgency, status, impact := c.Urgency, c.Status, strings.Join(strings.Fields(c.LevelOfImpact), "\n")

		if !c.IsClosed() {
			urgency = styled(urgencyStyles, c.Urgency)
			status = styled(statusStyles, c.Status)

			if style, ok := impactStyles[zayo.CaseImpact(c.LevelOfImpact)]; ok {
				impact = style.Sprint(impact)
			}
		}

		_ = table.Append(
			c.CaseNumber,
			urgency,
			status,
			impact,
			caseDates(c, now),
			fold(c.Location, constants.LocationColumnWidth),
			c.FromTime,
			c.ToTime,
			c.ReasonForMaintenance,
		)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderImpactsTable(w io.Writer, impacts []zayo.Impact) error {
	writeTitle(w, title("Impact", "Impacts", len(impacts)))

	table := tablewriter.NewWriter(w)
	table.Header("Case #", "Circuit Id", "Expected Impact", "CLLI A", "CLLI Z")

	for _, impact := range impacts {
		_ = table.Append(impact.CaseNumber, impact.CircuitID, impact.ExpectedImpact, impact.CLLIA, impact.CLLIZ)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderNotificationsTable(w io.Writer, notifications []zayo.NotificationDetail, now time.Time) error {
	writeTitle(w, title("Notification", "Notifications", len(notifications)))

	table := tablewriter.NewWriter(w)
	table.Header("#", "Type", "Email Sent", "Email Subject", "Email To")

	for i := range notifications {
		n := &notifications[i]

		_ = table.Append(n.Name, n.Type, sentAt(n.Date, now), n.EmailSubject, strings.Join(n.Recipients(), "\n"))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderServicesTable(w io.Writer, services []zayo.Service) error {
	writeTitle(w, title("Service", "Services", len(services)))

	table := tablewriter.NewWriter(w)
	table.Header("Name", "Status", "Product", "Circuit Id", "Bandwidth", "Location A", "Location Z")

	for i := range services {
		s := &services[i]

		_ = table.Append(
			s.ServiceName,
			styled(inventoryStyles, s.Status),
			s.ProductGroup+"\n"+s.ProductCategory,
			s.CircuitID(),
			s.Bandwidth(),
			serviceLocation(s, 0),
			serviceLocation(s, 1),
		)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func serviceLocation(s *zayo.Service, i int) string {
	loc, ok := s.Location(i)
	if !ok {
		return constants.NotAvailable
	}

	return loc.Address()
}
