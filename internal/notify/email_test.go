package notify

import (
	"testing"

	"github.com/Yahelsm/stz-signal-tool/internal/config"
)

func TestNewEmailNotifier_FromDefaultsToUser(t *testing.T) {
	t.Setenv("SMTP_USER", "alerts@example.com")
	t.Setenv("SMTP_PASS", "secret")

	cfg := config.Default()
	cfg.SMTP.Host = "smtp.example.com"

	n := NewEmailNotifier(cfg)
	if n.from != "alerts@example.com" {
		t.Errorf("from %q, want SMTP_USER fallback", n.from)
	}
	if n.port != 587 {
		t.Errorf("port %d, want default 587", n.port)
	}
}

func TestNewEmailNotifier_ExplicitFrom(t *testing.T) {
	t.Setenv("SMTP_USER", "login@example.com")

	cfg := config.Default()
	cfg.SMTP.From = "noreply@example.com"

	n := NewEmailNotifier(cfg)
	if n.from != "noreply@example.com" {
		t.Errorf("from %q, want configured address", n.from)
	}
	if n.user != "login@example.com" {
		t.Errorf("user %q", n.user)
	}
}
