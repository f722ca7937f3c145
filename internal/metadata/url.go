package metadata

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// webSchemes are the URL schemes accepted besides outernet://.
var webSchemes = []string{"http", "https", "ftp", "ftps"}

// outernetURL matches outernet://host/path where the host is a single
// segment and the path a list of slash-separated segments.
var outernetURL = regexp.MustCompile(
	`^outernet://[a-zA-Z0-9_-]+(/([a-zA-Z0-9_-]+(/[a-zA-Z0-9_-]+)*/?)?)?$`)

// syntax is safe for concurrent use once created.
var syntax = validator.New()

// URL fails if the value is not a syntactically valid web or outernet URL.
func URL() Rule {
	return RuleFunc(func(f Field, _ Document) Outcome {
		s, ok := f.Value.(string)
		if !ok || !IsValidURL(s) {
			return Fail(ReasonInvalidURL, "invalid URL")
		}
		return Pass()
	})
}

// IsValidURL reports whether s is an http(s)/ftp(s) URL or an outernet:// URL.
func IsValidURL(s string) bool {
	scheme, _, found := strings.Cut(s, "://")
	if !found {
		return false
	}
	scheme = strings.ToLower(scheme)
	if scheme == "outernet" {
		return outernetURL.MatchString(s)
	}
	for _, allowed := range webSchemes {
		if scheme == allowed {
			return syntax.Var(s, "url") == nil
		}
	}
	return false
}
