package pkgmeta

import "context"

// Approver confirms overwriting a file that already exists.
//
// Implementations:
//   - ForcedApprover: approves without asking (--force)
//   - InteractiveApprover: asks on the terminal and approves only on "y" or "yes"
type Approver interface {
	// RequestApproval asks whether path may be overwritten. It returns false
	// without error when the user declines.
	RequestApproval(ctx context.Context, path string) (bool, error)
}
