// Package params turns command line and file input into template overrides.
//
// Overrides come from two sources:
//   - --set flags in key=value form, parsed by ParseKeyValuePairs
//   - values files with one KEY=VALUE per line, parsed by ParseValuesFile
//
// Typed converts the raw strings into document values: anything that is
// valid JSON (numbers, booleans, objects) is decoded, everything else stays
// a string. Text fields are never decoded into another type, so --set
// title=123 keeps the string "123":
//
//	pkgmeta template --set images=3 --set title=123
//
// # Thread Safety
//
// All functions are safe for concurrent use.
package params
