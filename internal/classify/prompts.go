package classify

import "fmt"

// AudioPrompt instructs the classifier to categorize a spoken business
// event and return one of the recognized JSON shapes.
func AudioPrompt(today string) string {
	return fmt.Sprintf(`Today is [%s]. Listen to audio. Classify INTENT as 'INVOICE', 'TASK', or 'CONTACT'.
1. INVOICE: { "intent": "INVOICE", "client": "Name", "amount": 100, "description": "Short summary of work" }
2. TASK: { "intent": "TASK", "description": "Action item", "due_date": "YYYY-MM-DD" (Calculate based on 'today', or null if none) }
3. CONTACT: { "intent": "CONTACT", "name": "Name", "phone": "Phone#", "company": "Company or null" }
Return ONLY valid JSON.`, today)
}

// ImagePrompt instructs the classifier to extract an expense from a
// receipt photo, or signal an explicit error for anything else.
func ImagePrompt(today string) string {
	return fmt.Sprintf(`Today is [%s]. Analyze this image. Is it a RECEIPT?
If YES, return JSON: { "intent": "EXPENSE", "merchant": "Name", "amount": 0.00, "date": "YYYY-MM-DD", "category": "Category (Materials, Fuel, Tools, Other)" }
If NO, return JSON: { "error": "Not a receipt" }`, today)
}
