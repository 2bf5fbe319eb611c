package notify

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/carebridge/homecare-platform/pkg/logging"
)

func TestLogSenderLogsInsteadOfSending(t *testing.T) {
	var buf bytes.Buffer
	sender := NewLogSender(logging.NewWithWriter("info", &buf))

	err := sender.Send(context.Background(), "Edna Wu", "edna@example.com", "Visit scheduled", "See you Tuesday.")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "edna@example.com") {
		t.Errorf("log output missing recipient: %s", out)
	}
	if !strings.Contains(out, "Visit scheduled") {
		t.Errorf("log output missing subject: %s", out)
	}
}

func TestLogSenderNilLogger(t *testing.T) {
	sender := NewLogSender(nil)
	if err := sender.Send(context.Background(), "", "a@b.com", "s", "b"); err != nil {
		t.Fatalf("send: %v", err)
	}
}

var _ Sender = (*SendGridSender)(nil)
var _ Sender = (*LogSender)(nil)
