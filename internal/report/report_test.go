package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Yahelsm/stz-signal-tool/internal/types"
)

func TestRender_Sections(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Jerusalem")
	now := time.Date(2024, 3, 6, 23, 0, 0, 0, time.UTC)

	cls := types.Classification{
		Enter:    []string{"AAPL"},
		Breakout: []string{},
		Exit:     []string{"MSFT"},
	}
	rep := Render(cls, now, loc, false)

	// 23:00 UTC is already March 7 in Jerusalem.
	if rep.Subject != "Stock Alert – 07/03/2024" {
		t.Errorf("subject %q", rep.Subject)
	}
	if !strings.Contains(rep.Text, "Mode: end-of-day") {
		t.Error("missing end-of-day mode line")
	}
	for _, title := range []string{"Enter:", "Breakout:", "Exit:"} {
		if !strings.Contains(rep.Text, title) {
			t.Errorf("missing section %q", title)
		}
	}

	enterIdx := strings.Index(rep.Text, "Enter:")
	breakoutIdx := strings.Index(rep.Text, "Breakout:")
	exitIdx := strings.Index(rep.Text, "Exit:")
	aaplIdx := strings.Index(rep.Text, "AAPL")
	msftIdx := strings.Index(rep.Text, "MSFT")

	if !(enterIdx < aaplIdx && aaplIdx < breakoutIdx) {
		t.Error("AAPL not under Enter section")
	}
	if !(exitIdx < msftIdx) {
		t.Error("MSFT not under Exit section")
	}
}

func TestRender_LiveMode(t *testing.T) {
	loc := time.UTC
	rep := Render(types.Classification{}, time.Now(), loc, true)
	if !strings.Contains(rep.Text, "Mode: live") {
		t.Error("missing live mode line")
	}
}

func TestRender_CapsAtTwenty(t *testing.T) {
	var many []string
	for i := 0; i < 30; i++ {
		many = append(many, fmt.Sprintf("SYM%02d", i))
	}
	rep := Render(types.Classification{Enter: many}, time.Now(), time.UTC, false)

	if strings.Contains(rep.Text, "SYM20") {
		t.Error("symbols beyond 20 should be dropped")
	}
	if !strings.Contains(rep.Text, "SYM19") {
		t.Error("first 20 symbols should be kept")
	}
}

func TestRender_HTMLEscapes(t *testing.T) {
	rep := Render(types.Classification{Enter: []string{"<script>"}}, time.Now(), time.UTC, false)
	if strings.Contains(rep.HTML, "<script>") {
		t.Error("HTML body must escape symbol text")
	}
}

func TestRenderError(t *testing.T) {
	rep := RenderError("Universe fetch failed.")
	if rep.Subject != "Stock Alert – ERROR" {
		t.Errorf("subject %q", rep.Subject)
	}
	if !strings.Contains(rep.Text, "Universe fetch failed.") {
		t.Error("missing reason in body")
	}
}
