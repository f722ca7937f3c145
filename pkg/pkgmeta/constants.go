package pkgmeta

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // All documents valid, command completed
	ExitGeneralError    = 1  // Invalid document, unreadable file or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid pkgmeta.yaml or flag values
	ExitPackageConflict = 11 // Target package directory already holds files
	ExitApprovalDenied  = 12 // User denied overwriting an existing file
)

const (
	// DocumentFileName is the conventional name of a package metadata document.
	DocumentFileName = "info.json"

	// ConfigFileName is the optional project configuration file.
	ConfigFileName = "pkgmeta.yaml"

	// DefaultIndent is the number of spaces used when writing documents.
	DefaultIndent = 4

	// BroadcastPlaceholder marks a broadcast date that is filled in at broadcast time.
	BroadcastPlaceholder = "$BROADCAST"
)
