// Package classify maps free text plus the original filename to one of the
// closed set of document types. Purely first-match precedence: filename
// rules run before content rules, and no match falls back to
// general_document.
package classify

import (
	"strings"

	"github.com/homeward-labs/docintel/constants"
)

type rule struct {
	keywords []string
	label    constants.DocumentType
}

// Filename signals are checked first: an upload named "passport.jpg" is an
// identity document no matter what the OCR text says.
var filenameRules = []rule{
	{[]string{"passport", "license", "id", "driver"}, constants.IdentityDocument},
	{[]string{"payslip", "salary", "income", "pay"}, constants.IncomeDocument},
	{[]string{"bank", "statement", "account"}, constants.BankStatement},
	{[]string{"property", "valuation", "appraisal"}, constants.PropertyDocument},
}

var contentRules = []rule{
	{[]string{"passport", "driver license", "identification"}, constants.IdentityDocument},
	{[]string{"gross pay", "net pay", "salary", "wages"}, constants.IncomeDocument},
	{[]string{"account balance", "transaction", "deposit", "withdrawal"}, constants.BankStatement},
	{[]string{"property value", "valuation", "appraisal"}, constants.PropertyDocument},
}

// Classify returns the document type for the given extracted text and
// original filename.
func Classify(text, filename string) constants.DocumentType {
	filenameLower := strings.ToLower(filename)
	for _, r := range filenameRules {
		if containsAny(filenameLower, r.keywords) {
			return r.label
		}
	}

	textLower := strings.ToLower(text)
	for _, r := range contentRules {
		if containsAny(textLower, r.keywords) {
			return r.label
		}
	}

	return constants.GeneralDocument
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
