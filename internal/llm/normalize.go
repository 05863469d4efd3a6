package llm

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/statement-analyzer/internal/entity"
)

// jsonPrefixLen bounds how much of an unparseable completion ends up in an
// error message.
const jsonPrefixLen = 160

// wrapKey is the field name models most often wrap the array under.
const wrapKey = "transactions"

// Normalize turns a raw completion into the transaction list. It strips code
// fences, parses the JSON, and accepts either a top-level array or an object
// wrapping one a single level deep. Beyond coercing string amounts to
// numbers it does not validate individual fields; minor schema drift from
// the model is passed through to the caller. Known limitation. Amounts that
// cannot be coerced come back as 0 and are logged.
func Normalize(raw string, logger *slog.Logger) ([]entity.Transaction, error) {
	if logger == nil {
		logger = slog.Default()
	}
	text := stripFences(raw)

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var parsed any
	if err := dec.Decode(&parsed); err != nil {
		return nil, &InvalidJSONError{Prefix: prefix(text), Err: err}
	}

	list, err := unwrapList(parsed)
	if err != nil {
		return nil, err
	}

	out := make([]entity.Transaction, 0, len(list))
	for _, el := range list {
		obj, ok := el.(map[string]any)
		if !ok {
			return nil, ErrUnexpectedResponseShape
		}
		out = append(out, toTransaction(obj, logger))
	}
	return out, nil
}

// stripFences removes markdown code-fence markers (language-tagged or plain)
// that models like to wrap around JSON payloads.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// unwrapList accepts an array, or an object carrying an array one level deep
// (preferring the "transactions" key). Anything else is an unexpected shape.
func unwrapList(v any) ([]any, error) {
	switch t := v.(type) {
	case []any:
		return t, nil
	case map[string]any:
		if arr, ok := t[wrapKey].([]any); ok {
			return arr, nil
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if arr, ok := t[k].([]any); ok {
				return arr, nil
			}
		}
	}
	return nil, ErrUnexpectedResponseShape
}

func toTransaction(obj map[string]any, logger *slog.Logger) entity.Transaction {
	var tx entity.Transaction
	if s, ok := obj["date"].(string); ok {
		tx.Date = s
	}
	if s, ok := obj["description"].(string); ok {
		tx.Description = s
	}
	if s, ok := obj["category"].(string); ok {
		tx.Category = s
	}
	tx.Amount = coerceAmount(obj["amount"], logger)
	return tx
}

// coerceAmount accepts the number the schema asks for, but also the quoted
// decimals models occasionally emit ("-50.00"). Anything unparseable becomes
// 0, with a warning naming the offending value.
func coerceAmount(v any, logger *slog.Logger) float64 {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			logger.Warn("llm.normalize.amount_unparseable", "amount", t.String())
			return 0
		}
		return f
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			logger.Warn("llm.normalize.amount_unparseable", "amount", t)
			return 0
		}
		return f
	}
	if v != nil {
		logger.Warn("llm.normalize.amount_unparseable", "amount", v)
	}
	return 0
}

func prefix(s string) string {
	if len(s) > jsonPrefixLen {
		return s[:jsonPrefixLen]
	}
	return s
}
