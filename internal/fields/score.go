package fields

import "github.com/homeward-labs/docintel/constants"

// Analysis confidence policy: base credit for any extraction at all, fixed
// per-field increments keyed to the document type, small flat bonuses for
// the common fields, clamped at 1.0. Additive-then-clamp, never averaged.
const (
	baseConfidence = 0.5
	commonBonus    = 0.05
)

// Score derives a 0..1 confidence from which expected fields were found.
// An empty field set scores 0.0 outright.
func Score(fs *FieldSet, docType constants.DocumentType) float32 {
	if fs.Len() == 0 {
		return 0.0
	}

	confidence := float32(baseConfidence)

	switch docType {
	case constants.IdentityDocument:
		if fs.Has(FieldFullName) {
			confidence += 0.2
		}
		if fs.Has(FieldDateOfBirth) {
			confidence += 0.2
		}
		if fs.Has(FieldDocumentNumber) {
			confidence += 0.1
		}
	case constants.IncomeDocument:
		if fs.Has(FieldGrossIncome) {
			confidence += 0.2
		}
		if fs.Has(FieldEmployer) {
			confidence += 0.2
		}
		if fs.Has(FieldNetIncome) {
			confidence += 0.1
		}
	case constants.BankStatement:
		if fs.Has(FieldAccountBalance) {
			confidence += 0.2
		}
		if fs.Has(FieldAccountNumber) {
			confidence += 0.2
		}
	}

	if fs.Has(FieldDatesFound) {
		confidence += commonBonus
	}
	if fs.Has(FieldPhoneNumbers) {
		confidence += commonBonus
	}
	if fs.Has(FieldEmailAddresses) {
		confidence += commonBonus
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}
