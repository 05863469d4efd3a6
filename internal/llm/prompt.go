package llm

import (
	"strings"

	"github.com/joseph-ayodele/statement-analyzer/constants"
)

// BuildPrompt embeds the extracted statement text into the fixed analyst
// instruction template. Pure and deterministic: same text in, same prompt out.
func BuildPrompt(statementText string) string {
	categories := strings.Join(constants.AsStringSlice(), ", ")

	rules := []string{
		"1. Identify every single transaction. Exclude header rows and any 'Opening Balance' row.",
		"2. For each transaction, extract exactly these fields:",
		`   - "date": the transaction date in ISO format (YYYY-MM-DD).`,
		`   - "description": a clean, short description of the transaction.`,
		`   - "amount": the amount as a number. Debits (money spent) are negative, credits (money received) are positive.`,
		`   - "category": exactly one of: ` + categories + `. Use "Other" if uncertain.`,
		"3. If an amount cannot be parsed as a number, skip that row entirely. Never guess an amount.",
		"4. Return a single valid JSON array where each element is one transaction with exactly the four fields above. Do not include any text, explanation, or markdown formatting before or after the JSON array.",
	}

	var b strings.Builder
	b.WriteString("You are an expert financial analyst AI. Your task is to analyze tabular text from a bank statement (cells are tab-separated, rows are newline-separated) and convert it into a structured list of transactions in JSON format.\n\n")
	b.WriteString("Analyze the following bank statement text:\n")
	b.WriteString("---\n")
	b.WriteString(statementText)
	b.WriteString("\n---\n\n")
	b.WriteString("Instructions:\n")
	b.WriteString(strings.Join(rules, "\n"))
	b.WriteString("\n\nExample of the required JSON output format:\n")
	b.WriteString(`[
  {
    "date": "2023-10-15",
    "description": "Salary Deposit",
    "amount": 50000.00,
    "category": "Income"
  }
]`)
	return b.String()
}
