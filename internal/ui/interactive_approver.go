package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/pkgmeta/pkg/pkgmeta"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation.
type InteractiveApprover struct {
	input  io.Reader
	output io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover reading answers
// from input and writing prompts to output.
func NewInteractiveApprover(input io.Reader, output io.Writer) pkgmeta.Approver {
	return &InteractiveApprover{input: input, output: output}
}

// RequestApproval asks whether path may be overwritten.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, path string) (bool, error) {
	fmt.Fprintf(a.output, "%s already exists. Overwrite? [y/N]: ", path)

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil && !(err == io.EOF && input != "") {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		switch strings.ToLower(input) {
		case "y", "yes":
			return true, nil
		default:
			fmt.Fprintln(a.output, "Operation cancelled.")
			return false, nil
		}
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ pkgmeta.Approver = (*InteractiveApprover)(nil)
