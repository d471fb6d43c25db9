package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dunr-app/dunr/internal/plan"
)

const icalDateFormat = "20060102"

// WriteICal writes the sessions as an iCalendar document with one all-day
// event per session, so riders can lay the plan over their own calendar.
func WriteICal(w io.Writer, sessions []plan.Session, now time.Time) error {
	var b strings.Builder

	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:-//dunr//training plan//EN")
	writeLine(&b, "CALSCALE:GREGORIAN")
	writeLine(&b, "METHOD:PUBLISH")

	stamp := now.UTC().Format("20060102T150405Z")
	for _, s := range sessions {
		writeLine(&b, "BEGIN:VEVENT")
		writeLine(&b, "UID:"+s.ID+"@dunr.app")
		writeLine(&b, "DTSTAMP:"+stamp)
		writeLine(&b, "DTSTART;VALUE=DATE:"+s.Date.Format(icalDateFormat))
		writeLine(&b, "DTEND;VALUE=DATE:"+s.Date.AddDate(0, 0, 1).Format(icalDateFormat))
		writeLine(&b, "SUMMARY:"+escapeText(summary(s)))
		if s.Description != "" {
			writeLine(&b, "DESCRIPTION:"+escapeText(s.Description))
		}
		writeLine(&b, "END:VEVENT")
	}

	writeLine(&b, "END:VCALENDAR")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}

	return nil
}

func summary(s plan.Session) string {
	return fmt.Sprintf("%s (%d min)", sessionTitle(s.Type), s.PlannedDurationMin)
}

func sessionTitle(t plan.SessionType) string {
	switch t {
	case plan.TypeEndurance:
		return "Endurance ride"
	case plan.TypeIntervals:
		return "Interval session"
	case plan.TypeStrength:
		return "Strength work"
	case plan.TypeActiveRest:
		return "Active recovery"
	case plan.TypeLong:
		return "Long ride"
	default:
		return string(t)
	}
}

// writeLine appends a content line with the CRLF ending RFC 5545 requires.
func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}

// escapeText escapes the characters RFC 5545 reserves in text values.
func escapeText(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)

	return replacer.Replace(s)
}
