package enrich

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/rotisserie/eris"

	"github.com/sells-group/contact-crawler/internal/extract"
	"github.com/sells-group/contact-crawler/internal/model"
	"github.com/sells-group/contact-crawler/pkg/anthropic"
)

// maxAnalysisChars bounds the page text sent to the model.
const maxAnalysisChars = 12000

const companySystemPrompt = `You are an expert at extracting structured company information from web pages.
Extract the company display name, official legal name (e.g. "HORIZON SOFTWARE SAS"),
and postal address (street, postalCode, city, ISO-2 country code, countryName).
Return ONLY valid JSON matching the requested shape. Use null for missing fields.`

const teamSystemPrompt = `You are an expert at extracting team member information from web pages.
Extract team members with their names, roles, and LinkedIn profile URLs.
Ignore section titles like "Leadership" or "Sales & Marketing"; only extract
actual people with a First Name + Last Name pattern, one object per person.
Return ONLY a valid JSON object with a "team" array. Use null for missing fields.`

// AnthropicExtractor implements Extractor on the Anthropic Messages API.
// Constructed once at process start and passed into the orchestrator.
type AnthropicExtractor struct {
	client anthropic.Client
	model  string
}

// NewAnthropicExtractor wraps an Anthropic client. model is the model ID to
// query.
func NewAnthropicExtractor(client anthropic.Client, model string) *AnthropicExtractor {
	return &AnthropicExtractor{client: client, model: model}
}

// llmRecord is the JSON shape the prompts request.
type llmRecord struct {
	Company *struct {
		Name      string `json:"name"`
		LegalName string `json:"legalName"`
		Address   *struct {
			Street      string `json:"street"`
			PostalCode  string `json:"postalCode"`
			City        string `json:"city"`
			Country     string `json:"country"`
			CountryName string `json:"countryName"`
		} `json:"address"`
	} `json:"company"`
	Team []struct {
		Name     string `json:"name"`
		Role     string `json:"role"`
		LinkedIn string `json:"linkedin"`
	} `json:"team"`
}

// Extract queries the model with a page-type-specific prompt and parses the
// JSON reply, repairing it when the model wraps or truncates it.
func (a *AnthropicExtractor) Extract(ctx context.Context, html, pageURL string, hint PageHint) (*Result, error) {
	text := extract.AnalysisText(html)
	if len(text) > maxAnalysisChars {
		text = text[:maxAnalysisChars] + "..."
	}

	system := companySystemPrompt
	if hint == HintTeam {
		system = teamSystemPrompt
	}

	temp := 0.1
	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       a.model,
		MaxTokens:   2000,
		Temperature: &temp,
		System:      []anthropic.SystemBlock{{Text: system}},
		Messages: []anthropic.Message{{
			Role:    "user",
			Content: userPrompt(text, pageURL, hint),
		}},
	})
	if err != nil {
		return nil, eris.Wrap(err, "enrich: create message")
	}
	resp.Usage.LogCost(a.model, "enrich")

	var rec llmRecord
	if err := unmarshalLenient(resp.Text(), &rec); err != nil {
		return nil, eris.Wrap(err, "enrich: parse response")
	}
	return toResult(&rec, pageURL), nil
}

func userPrompt(text, pageURL string, hint PageHint) string {
	var b strings.Builder
	b.WriteString("Extract ")
	switch hint {
	case HintTeam:
		b.WriteString("team members")
	case HintLegal, HintContact:
		b.WriteString("company information")
	default:
		b.WriteString("company information and team members")
	}
	b.WriteString(" from this page (URL: ")
	b.WriteString(pageURL)
	b.WriteString("):\n\n")
	b.WriteString(text)
	b.WriteString("\n\nReturn JSON in this exact format:\n")
	if hint == HintTeam {
		b.WriteString(`{"team":[{"name":"First Last","role":"string or null","linkedin":"string or null"}]}`)
	} else {
		b.WriteString(`{"company":{"name":"string or null","legalName":"string or null","address":{"street":"string or null","postalCode":"string or null","city":"string or null","country":"string or null","countryName":"string or null"}},"team":[]}`)
	}
	return b.String()
}

// unmarshalLenient parses model output as JSON, falling back to jsonrepair
// for fenced, truncated, or otherwise slightly-broken replies.
func unmarshalLenient(content string, v any) error {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	if err := json.Unmarshal([]byte(content), v); err == nil {
		return nil
	}
	repaired, err := jsonrepair.JSONRepair(content)
	if err != nil {
		return eris.Wrap(err, "repair json")
	}
	return json.Unmarshal([]byte(repaired), v)
}

func toResult(rec *llmRecord, pageURL string) *Result {
	res := &Result{}
	if rec.Company != nil {
		company := &model.CompanyFact{
			Name:      rec.Company.Name,
			LegalName: rec.Company.LegalName,
		}
		if rec.Company.Address != nil {
			company.Address = &model.Address{
				Street:      rec.Company.Address.Street,
				PostalCode:  rec.Company.Address.PostalCode,
				City:        rec.Company.Address.City,
				Country:     strings.ToUpper(rec.Company.Address.Country),
				CountryName: rec.Company.Address.CountryName,
			}
			company.Country = company.Address.Country
			company.CountryName = company.Address.CountryName
		}
		if !company.IsZero() {
			res.Company = company
		}
	}
	for _, m := range rec.Team {
		if strings.TrimSpace(m.Name) == "" {
			continue
		}
		res.Team = append(res.Team, model.TeamMemberFact{
			Name:      strings.TrimSpace(m.Name),
			Role:      strings.TrimSpace(m.Role),
			LinkedIn:  strings.TrimSpace(m.LinkedIn),
			SourceURL: pageURL,
			Signals:   []string{model.SignalLLM},
		})
	}
	return res
}
