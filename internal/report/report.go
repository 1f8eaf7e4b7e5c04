// Package report renders the fixed-format alert message: a dated subject,
// the data-freshness mode, and three titled symbol sections.
package report

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Yahelsm/stz-signal-tool/internal/types"
)

type Report struct {
	Subject string
	Text    string
	HTML    string
}

type section struct {
	title   string
	symbols []string
}

// Render builds the notification for one classification result. now is
// converted into loc for the subject date; live selects the freshness label.
func Render(cls types.Classification, now time.Time, loc *time.Location, live bool) Report {
	date := now.In(loc).Format("02/01/2006")
	subject := "Stock Alert – " + date

	mode := "end-of-day"
	if live {
		mode = "live"
	}

	sections := []section{
		{"Enter", cap20(cls.Enter)},
		{"Breakout", cap20(cls.Breakout)},
		{"Exit", cap20(cls.Exit)},
	}

	var text strings.Builder
	text.WriteString(subject + "\n")
	text.WriteString("Mode: " + mode + "\n\n")
	for _, s := range sections {
		text.WriteString(s.title + ":\n")
		for _, sym := range s.symbols {
			text.WriteString(sym + "\n")
		}
		text.WriteString("\n")
	}

	var htm strings.Builder
	htm.WriteString("<html><body>")
	htm.WriteString(fmt.Sprintf("<h2>%s</h2>", html.EscapeString(subject)))
	htm.WriteString(fmt.Sprintf("<p>Mode: %s</p>", mode))
	for _, s := range sections {
		htm.WriteString(fmt.Sprintf("<h3>%s</h3><ul>", s.title))
		for _, sym := range s.symbols {
			htm.WriteString("<li>" + html.EscapeString(sym) + "</li>")
		}
		htm.WriteString("</ul>")
	}
	htm.WriteString("</body></html>")

	return Report{Subject: subject, Text: text.String(), HTML: htm.String()}
}

// RenderError builds the universe-failure notification.
func RenderError(reason string) Report {
	return Report{
		Subject: "Stock Alert – ERROR",
		Text:    reason + "\n",
	}
}

func cap20(symbols []string) []string {
	if len(symbols) > types.MaxSymbolsPerBucket {
		return symbols[:types.MaxSymbolsPerBucket]
	}
	return symbols
}
