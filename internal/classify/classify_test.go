package classify

import (
	"testing"

	"github.com/homeward-labs/docintel/constants"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		filename string
		want     constants.DocumentType
	}{
		{
			name:     "passport filename",
			text:     "",
			filename: "passport_scan.jpg",
			want:     constants.IdentityDocument,
		},
		{
			name:     "payslip filename",
			text:     "",
			filename: "march_payslip.pdf",
			want:     constants.IncomeDocument,
		},
		{
			name:     "bank statement filename",
			text:     "",
			filename: "bank-statement-2024.pdf",
			want:     constants.BankStatement,
		},
		{
			name:     "valuation filename",
			text:     "",
			filename: "property_valuation.pdf",
			want:     constants.PropertyDocument,
		},
		{
			name:     "income content",
			text:     "Gross Pay: $5,000.00 for the period ending 31/03/2024",
			filename: "document.pdf",
			want:     constants.IncomeDocument,
		},
		{
			name:     "bank content",
			text:     "Your account balance as of 1 March is $12,340.55",
			filename: "download.pdf",
			want:     constants.BankStatement,
		},
		{
			// filename signal outranks whatever the text says
			name:     "filename wins over content",
			text:     "Gross Pay: $5,000.00 net pay salary wages",
			filename: "passport.pdf",
			want:     constants.IdentityDocument,
		},
		{
			name:     "case insensitive",
			text:     "PROPERTY VALUE: $850,000",
			filename: "SCAN0001.PDF",
			want:     constants.PropertyDocument,
		},
		{
			name:     "no signals",
			text:     "lorem ipsum dolor sit amet",
			filename: "scan0001.pdf",
			want:     constants.GeneralDocument,
		},
		{
			name:     "empty everything",
			text:     "",
			filename: "",
			want:     constants.GeneralDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text, tt.filename); got != tt.want {
				t.Errorf("Classify(%q, %q) = %v, want %v", tt.text, tt.filename, got, tt.want)
			}
		})
	}
}

func TestClassifyFilenameRulePrecedence(t *testing.T) {
	// "statement" alone maps to bank_statement, but an earlier identity
	// keyword in the same name takes precedence because rules run in order.
	got := Classify("", "drivers_license_statement.pdf")
	if got != constants.IdentityDocument {
		t.Errorf("got %v, want identity_document", got)
	}
}
