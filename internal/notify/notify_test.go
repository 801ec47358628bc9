package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
)

func TestNewSMTPNotifier_FallsBackToNop(t *testing.T) {
	if _, ok := NewSMTPNotifier("", 587, "", "", "a@b", "c@d").(NopNotifier); !ok {
		t.Fatalf("empty host should yield NopNotifier")
	}
	if _, ok := NewSMTPNotifier("smtp.example.com", 587, "", "", "a@b", "").(NopNotifier); !ok {
		t.Fatalf("empty recipient should yield NopNotifier")
	}
	if _, ok := NewSMTPNotifier("smtp.example.com", 587, "", "", "a@b", "c@d").(*SMTPNotifier); !ok {
		t.Fatalf("full config should yield SMTPNotifier")
	}
}

func TestSyncFailure_BuildsMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	n := &SMTPNotifier{
		Host: "smtp.example.com",
		Port: 587,
		From: "noreply@example.com",
		To:   "admin@example.com",
		sendMail: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			return nil
		},
	}

	errs := []string{"sedo 2026-08-20 d4.com: negative gross revenue", "fetch failed"}
	if err := n.SyncFailure(context.Background(), "sedo", errs); err != nil {
		t.Fatalf("SyncFailure: %v", err)
	}

	if gotAddr != "smtp.example.com:587" {
		t.Fatalf("addr = %q", gotAddr)
	}
	if gotFrom != "noreply@example.com" || len(gotTo) != 1 || gotTo[0] != "admin@example.com" {
		t.Fatalf("envelope = %q -> %v", gotFrom, gotTo)
	}
	msg := string(gotMsg)
	if !strings.Contains(msg, "Subject: Revenue sync failed: sedo (2 errors)") {
		t.Fatalf("subject missing from message:\n%s", msg)
	}
	for _, e := range errs {
		if !strings.Contains(msg, e) {
			t.Fatalf("error %q missing from message body", e)
		}
	}
}

func TestSyncFailure_PropagatesSendError(t *testing.T) {
	sendErr := errors.New("connection refused")
	n := &SMTPNotifier{
		Host: "smtp.example.com",
		Port: 587,
		From: "a@b",
		To:   "c@d",
		sendMail: func(string, smtp.Auth, string, []string, []byte) error {
			return sendErr
		},
	}
	if err := n.SyncFailure(context.Background(), "yandex", []string{"boom"}); !errors.Is(err, sendErr) {
		t.Fatalf("got %v; want send error", err)
	}
}

func TestNopNotifier_NeverErrors(t *testing.T) {
	if err := (NopNotifier{}).SyncFailure(context.Background(), "sedo", []string{"x"}); err != nil {
		t.Fatalf("NopNotifier returned %v", err)
	}
}
