package lint

import (
	"fmt"
	"strings"
)

// DefaultDocsBaseURL is the hosted documentation site.
const DefaultDocsBaseURL = "https://leaplint.dev/rules"

// DocsBaseURL can be overridden via config for local/offline mode.
var DocsBaseURL = DefaultDocsBaseURL

// BuildDocURL constructs a documentation URL for a rule code.
func BuildDocURL(code string) string {
	return fmt.Sprintf("%s/%s", DocsBaseURL, strings.ToLower(code))
}

// SetDocsBaseURL overrides the default documentation base URL.
func SetDocsBaseURL(url string) {
	DocsBaseURL = strings.TrimSuffix(url, "/")
}

// ResetDocsBaseURL resets to the default documentation URL.
func ResetDocsBaseURL() {
	DocsBaseURL = DefaultDocsBaseURL
}

// RuleInfo is a serializable summary of a rule, used by the rules command
// and the language server.
type RuleInfo struct {
	Code     string   `json:"code" yaml:"code"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Priority int      `json:"priority" yaml:"priority"`
	Docs     string   `json:"docs,omitempty" yaml:"docs,omitempty"`
	DocURL   string   `json:"doc_url" yaml:"doc_url"`
}

// GetRuleInfo extracts RuleInfo from a rule.
func GetRuleInfo(r Rule) RuleInfo {
	info := RuleInfo{
		Code:     r.Code(),
		Tags:     r.Tags(),
		Priority: r.Priority(),
		DocURL:   BuildDocURL(r.Code()),
	}
	if d, ok := r.(Documented); ok {
		info.Docs = d.Docs()
	}
	return info
}
