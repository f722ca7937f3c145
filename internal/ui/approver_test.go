package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestForcedApprover_Approves(t *testing.T) {
	var output bytes.Buffer

	approved, err := NewForcedApprover(&output, false).RequestApproval(context.Background(), "info.json")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !approved {
		t.Fatal("Expected approval")
	}
	if output.Len() != 0 {
		t.Errorf("Expected no output without verbose, got %q", output.String())
	}
}

func TestForcedApprover_VerboseNotice(t *testing.T) {
	var output bytes.Buffer

	_, _ = NewForcedApprover(&output, true).RequestApproval(context.Background(), "pkg/info.json")

	if !strings.Contains(output.String(), "pkg/info.json") {
		t.Errorf("Expected output to contain the path, got:\n%s", output.String())
	}
}

func TestForcedApprover_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	approved, err := NewForcedApprover(io.Discard, false).RequestApproval(ctx, "info.json")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context cancellation error, got: %v", err)
	}
	if approved {
		t.Fatal("Expected approval to be false on cancellation")
	}
}

func TestInteractiveApprover_Answers(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"yes", true},
		{"n\n", false},
		{"\n", false},
		{"info.json\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var output bytes.Buffer
			approver := NewInteractiveApprover(strings.NewReader(tt.input), &output)

			approved, err := approver.RequestApproval(context.Background(), "info.json")
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if approved != tt.want {
				t.Errorf("RequestApproval() = %v, want %v", approved, tt.want)
			}
			if !strings.Contains(output.String(), "info.json already exists") {
				t.Errorf("Expected prompt to name the file, got %q", output.String())
			}
		})
	}
}

func TestInteractiveApprover_EmptyInput(t *testing.T) {
	approver := NewInteractiveApprover(strings.NewReader(""), io.Discard)

	approved, err := approver.RequestApproval(context.Background(), "info.json")
	if err == nil {
		t.Fatal("Expected error on closed input")
	}
	if approved {
		t.Fatal("Expected approval to be false")
	}
}

func TestInteractiveApprover_ContextCancellation(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	approved, err := NewInteractiveApprover(reader, io.Discard).RequestApproval(ctx, "info.json")
	if approved {
		t.Fatal("Expected approval to be false on cancellation")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context canceled error, got: %v", err)
	}
}
