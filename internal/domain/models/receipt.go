package models

// ReceiptExtraction is the structured result of reading a photographed
// receipt, plus the validated expense candidate built from it. The candidate
// is never persisted here; the caller confirms it through the regular
// expense flow.
type ReceiptExtraction struct {
	Date        string          `json:"date"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	Candidate   FinancialRecord `json:"candidate"`
}
