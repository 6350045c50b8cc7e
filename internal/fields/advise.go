package fields

import "github.com/homeward-labs/docintel/constants"

// Advise emits human-readable improvement suggestions keyed to the absence
// of high-value fields for the detected document type. Order follows rule
// declaration order; when nothing fires, a single positive acknowledgement
// is returned instead of an empty list.
func Advise(fs *FieldSet, docType constants.DocumentType) []string {
	var suggestions []string

	if fs.Len() < 2 {
		suggestions = append(suggestions,
			"Consider using a higher quality scan or image for better text extraction.",
			"Ensure the document is well-lit and all text is clearly visible.",
		)
	}

	if docType == constants.IdentityDocument && !fs.Has(FieldFullName) {
		suggestions = append(suggestions,
			"Name not clearly detected. Please ensure the name field is visible and not obscured.")
	}

	if docType == constants.IncomeDocument && !fs.Has(FieldGrossIncome) {
		suggestions = append(suggestions,
			"Income amount not detected. Please ensure salary/wage information is clearly visible.")
	}

	if docType == constants.BankStatement && !fs.Has(FieldAccountBalance) {
		suggestions = append(suggestions,
			"Account balance not detected. Please ensure the balance information is clearly visible.")
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions,
			"Document processed successfully. Review extracted information for accuracy.")
	}

	return suggestions
}
