package constants

// DocumentType is the closed set of document classifications the
// analyzer can produce.
type DocumentType string

// Stable values (returned verbatim over the API).
const (
	IdentityDocument DocumentType = "identity_document" // passport, driver license, ID card
	IncomeDocument   DocumentType = "income_document"   // payslip, salary letter
	BankStatement    DocumentType = "bank_statement"
	PropertyDocument DocumentType = "property_document" // valuation, appraisal
	GeneralDocument  DocumentType = "general_document"  // no better match
)

var allDocumentTypes = []DocumentType{
	IdentityDocument,
	IncomeDocument,
	BankStatement,
	PropertyDocument,
	GeneralDocument,
}

func DocumentTypes() []string {
	result := make([]string, len(allDocumentTypes))
	for i, dt := range allDocumentTypes {
		result[i] = string(dt)
	}
	return result
}
