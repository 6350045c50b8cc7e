package fields

import (
	"regexp"
	"strings"

	"github.com/homeward-labs/docintel/constants"
)

// Extract applies the type-specific rule set for the given label plus the
// type-agnostic common rules. The result is deterministic for a given input;
// running it twice yields an identical FieldSet.
func Extract(text string, docType constants.DocumentType) *FieldSet {
	fs := NewFieldSet()

	for _, rule := range typedRules[docType] {
		for _, p := range rule.patterns {
			if m := p.FindStringSubmatch(text); m != nil {
				fs.SetScalar(rule.field, strings.TrimSpace(m[1]))
				break
			}
		}
	}

	extractCommon(text, fs)
	return fs
}

func extractCommon(text string, fs *FieldSet) {
	fs.SetList(FieldDatesFound, findAllCapped(datePatterns, text, maxDates))
	fs.SetList(FieldPhoneNumbers, findAllCapped(phonePatterns, text, maxPhones))
	fs.SetList(FieldEmailAddresses, findAllCapped([]*regexp.Regexp{emailPattern}, text, maxEmails))
}

// findAllCapped collects first-group matches across the pattern family in
// declaration order, truncated at limit.
func findAllCapped(patterns []*regexp.Regexp, text string, limit int) []string {
	var out []string
	for _, p := range patterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			out = append(out, m[1])
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
