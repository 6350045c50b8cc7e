package fields

import (
	"regexp"

	"github.com/homeward-labs/docintel/constants"
)

// Canonical field names.
const (
	FieldFullName       = "full_name"
	FieldDateOfBirth    = "date_of_birth"
	FieldDocumentNumber = "document_number"
	FieldGrossIncome    = "gross_income"
	FieldNetIncome      = "net_income"
	FieldEmployer       = "employer"
	FieldAccountBalance = "account_balance"
	FieldAccountNumber  = "account_number"
	FieldPropertyValue  = "property_value"
	FieldPropertyAddr   = "property_address"
	FieldDatesFound     = "dates_found"
	FieldPhoneNumbers   = "phone_numbers"
	FieldEmailAddresses = "email_addresses"
)

// List-field caps are a policy truncation, not a structural limit.
const (
	maxDates  = 5
	maxPhones = 3
	maxEmails = 3
)

// patternRule is an ordered list of pattern alternatives for one field.
// Alternatives are tried in order; the first match wins and the rest are
// skipped.
type patternRule struct {
	field    string
	patterns []*regexp.Regexp
}

var identityRules = []patternRule{
	{FieldFullName, compileAll(
		`(?i)name[:\s]+([A-Z][a-z]+ [A-Z][a-z]+)`,
		`(?i)([A-Z][A-Z\s]+)\s+(?:DOB|Date of Birth)`,
	)},
	{FieldDateOfBirth, compileAll(
		`(?i)(?:DOB|Date of Birth)[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
		`(?i)(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
	)},
	{FieldDocumentNumber, compileAll(
		`(?i)(?:License|Passport|ID)[:\s#]*([A-Z0-9]+)`,
		`(?i)([A-Z]{1,2}\d{6,})`,
	)},
}

var incomeRules = []patternRule{
	{FieldGrossIncome, compileAll(
		`(?i)gross[:\s]+\$?([\d,]+\.?\d*)`,
		`(?i)total[:\s]+\$?([\d,]+\.?\d*)`,
	)},
	{FieldNetIncome, compileAll(
		`(?i)net[:\s]+\$?([\d,]+\.?\d*)`,
		`(?i)take home[:\s]+\$?([\d,]+\.?\d*)`,
	)},
	{FieldEmployer, compileAll(
		`(?i)employer[:\s]+([A-Za-z\s&.,]+)`,
		`(?i)company[:\s]+([A-Za-z\s&.,]+)`,
	)},
}

var bankRules = []patternRule{
	{FieldAccountBalance, compileAll(
		`(?i)balance[:\s]+\$?([\d,]+\.?\d*)`,
		`(?i)current balance[:\s]+\$?([\d,]+\.?\d*)`,
	)},
	{FieldAccountNumber, compileAll(
		`(?i)account[:\s#]*(\d{6,})`,
		`(?i)(\d{3}-\d{3}-\d{3,})`,
	)},
}

var propertyRules = []patternRule{
	{FieldPropertyValue, compileAll(
		`(?i)value[:\s]+\$?([\d,]+\.?\d*)`,
		`(?i)valuation[:\s]+\$?([\d,]+\.?\d*)`,
	)},
	{FieldPropertyAddr, compileAll(
		`(?i)(\d+\s+[A-Za-z\s]+(?:Street|St|Road|Rd|Avenue|Ave|Drive|Dr|Lane|Ln))`,
	)},
}

var typedRules = map[constants.DocumentType][]patternRule{
	constants.IdentityDocument: identityRules,
	constants.IncomeDocument:   incomeRules,
	constants.BankStatement:    bankRules,
	constants.PropertyDocument: propertyRules,
}

// Common patterns, always attempted regardless of document type.
var (
	datePatterns = compileAll(
		`(?i)(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
		`(?i)(\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{2,4})`,
	)
	phonePatterns = compileAll(
		`(\d{3}[-.\s]?\d{3}[-.\s]?\d{4})`,
		`(\(\d{3}\)\s*\d{3}[-.\s]?\d{4})`,
	)
	emailPattern = regexp.MustCompile(`([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
)

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}
