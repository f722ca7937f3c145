package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/vvka-141/pkgmeta/pkg/pkgmeta"
)

// ForcedApprover implements the Approver interface for forced (non-interactive)
// approval, used when the --force flag is provided.
type ForcedApprover struct {
	output  io.Writer
	verbose bool
}

// NewForcedApprover creates a new ForcedApprover writing its notice to output.
func NewForcedApprover(output io.Writer, verbose bool) pkgmeta.Approver {
	return &ForcedApprover{output: output, verbose: verbose}
}

// RequestApproval approves unless ctx is already done.
func (a *ForcedApprover) RequestApproval(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if a.verbose {
		fmt.Fprintf(a.output, "[VERBOSE] Overwriting %s (--force)\n", path)
	}
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ pkgmeta.Approver = (*ForcedApprover)(nil)
