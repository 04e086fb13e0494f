package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for classification.
const DefaultModel = "gemini-2.5-flash"

const systemInstruction = "You are an Australian accounting assistant. " +
	"You classify bank transactions using the provided chart of accounts. " +
	"You MUST only use account codes from the chart provided. " +
	"If unsure, use account code 0000 (Suspense) with low confidence. " +
	"Return ONLY valid JSON, no markdown, no code fences, just the JSON object."

// GeminiClassifier classifies transaction batches with the Gemini API.
// Credentials come from the environment (GEMINI_API_KEY).
type GeminiClassifier struct {
	client *genai.Client
	model  string
	log    zerolog.Logger
}

// NewGeminiClassifier creates a Gemini-backed classifier. An empty
// model name selects DefaultModel.
func NewGeminiClassifier(ctx context.Context, modelName string, log zerolog.Logger) (*GeminiClassifier, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	return &GeminiClassifier{client: client, model: modelName, log: log}, nil
}

// ClassifyBatch sends one batch to the model and decodes its JSON
// answer, padding short output so every transaction gets a suggestion.
func (c *GeminiClassifier) ClassifyBatch(ctx context.Context, req BatchRequest) ([]Suggestion, error) {
	prompt := buildBatchPrompt(req)

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: systemInstruction + "\n\n" + prompt},
			},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var parsed struct {
		Classifications []Suggestion `json:"classifications"`
	}
	clean := cleanModelJSON(raw)
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, fmt.Errorf("decoding model response: %w", err)
	}

	suggestions := parsed.Classifications
	if len(suggestions) != len(req.Transactions) {
		c.log.Warn().
			Int("expected", len(req.Transactions)).
			Int("got", len(suggestions)).
			Msg("classifier returned wrong count, padding with defaults")
	}
	if len(suggestions) > len(req.Transactions) {
		suggestions = suggestions[:len(req.Transactions)]
	}
	for len(suggestions) < len(req.Transactions) {
		suggestions = append(suggestions, fallbackSuggestion("No classification returned"))
	}
	return suggestions, nil
}

// buildBatchPrompt renders the classification request: chart context,
// registration status, and the numbered transaction list.
func buildBatchPrompt(req BatchRequest) string {
	var txnList strings.Builder
	for i, t := range req.Transactions {
		side := "CREDIT"
		if t.Amount.Sign() < 0 {
			side = "DEBIT"
		}
		fmt.Fprintf(&txnList, "%d. Date: %s, Desc: %q, Amount: $%s (%s)\n",
			i+1, t.Date.Format("2006-01-02"), t.Description, t.Amount.Abs().StringFixed(2), side)
	}

	gstContext := "GST CONTEXT: This client IS registered for GST. " +
		"Assign appropriate tax types (GST, ITS, N-T, GST-Free) based on the nature of each transaction."
	if !req.GSTRegistered {
		gstContext = "GST CONTEXT: This client is NOT registered for GST. " +
			"All tax types should be 'BAS Excluded'."
	}

	entityLabel := entityTypeLabel(req.EntityType)

	return fmt.Sprintf(
		"Classify these Australian bank transactions for a %s entity:\n\n"+
			"%s\n\n%s\n\nTRANSACTIONS:\n%s\n"+
			"Return ONLY valid JSON (no markdown, no code fences): "+
			`{"classifications": [{"accountCode": str, "accountName": str, `+
			`"taxType": str, "confidence": int 1-5, "reasoning": str}]}`,
		entityLabel, req.ChartPrompt, gstContext, txnList.String())
}

// entityTypeLabel turns "sole_trader" into "Sole Trader".
func entityTypeLabel(entityType string) string {
	words := strings.Fields(strings.ReplaceAll(entityType, "_", " "))
	if len(words) == 0 {
		return "Company"
	}
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// cleanModelJSON strips markdown code fences the model sometimes wraps
// its output in despite instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
