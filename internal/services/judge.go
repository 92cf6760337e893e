package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
)

var ErrJudgeUnavailable = errors.New("excuse judge unavailable")

// Verdict is the judge's ruling on one excuse.
type Verdict struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

// ExcuseJudge rules on whether an excuse justifies a missed week. Evidence
// is an optional inline image. Implementations must return an error rather
// than a fabricated verdict when the call fails; callers treat any error as
// a rejection.
type ExcuseJudge interface {
	Evaluate(ctx context.Context, excuse string, evidence []byte, evidenceMIME string) (Verdict, error)
}

const judgeSystemPrompt = `You are the strict but fair judge of the family fitness challenge "FitFam".

CONTEXT:
- 4 family members must each complete 3 exercise sessions per week
- Whoever falls short pays a fine in Chilean pesos into a shared pot
- Foreseeable absences (trips, holidays) must use the frozen-week feature in advance
- Excuses exist ONLY for genuinely unforeseeable situations

ACCEPT:
- Sudden illness (flu, COVID, infection), ideally with a medical note or photo
- An injury that prevents exercise, with evidence
- A serious family emergency (hospitalisation, accident)
- Force majeure

REJECT:
- "No time" / "too busy" - there are always 30 minutes for a session
- Laziness, tiredness, lack of motivation - exactly what the challenge fights
- Planned travel - that should have been a frozen week
- Bad weather - indoor exercise exists
- Vague excuses without concrete evidence
- Heavy workload - short sessions exist
- Anything foreseeable that could have been planned as a frozen week

BE STRICT. The point of the challenge is that there are no easy excuses.
If the user mentions evidence but did not attach it, reject and ask for it.
If an image is attached, weigh it as evidence.

Answer ONLY with valid JSON (no markdown, no backticks):
{"valid": true/false, "reason": "a brief explanation of at most two sentences"}`

// GeminiJudge calls the Google Generative Language REST API. Low temperature
// keeps rulings close to deterministic. Every failure path returns an error
// so the caller can fail closed.
type GeminiJudge struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewGeminiJudge(apiKey string, model string) *GeminiJudge {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiJudge{
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiRequest struct {
	Contents []struct {
		Parts []geminiPart `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

var verdictJSONPattern = regexp.MustCompile(`(?s)\{.*\}`)

func (judge *GeminiJudge) Evaluate(ctx context.Context, excuse string, evidence []byte, evidenceMIME string) (Verdict, error) {
	if judge.apiKey == "" {
		return Verdict{}, fmt.Errorf("%w: no API key configured", ErrJudgeUnavailable)
	}

	userPrompt := fmt.Sprintf("USER'S EXCUSE:\n%q", excuse)
	parts := []geminiPart{{Text: judgeSystemPrompt}}
	if len(evidence) > 0 {
		userPrompt += "\n\n(The user attached an image as evidence. Evaluate it.)"
		if evidenceMIME == "" {
			evidenceMIME = "image/jpeg"
		}
	}
	parts = append(parts, geminiPart{Text: userPrompt})
	if len(evidence) > 0 {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MIMEType: evidenceMIME,
			Data:     base64.StdEncoding.EncodeToString(evidence),
		}})
	}

	payload := geminiRequest{}
	payload.Contents = append(payload.Contents, struct {
		Parts []geminiPart `json:"parts"`
	}{Parts: parts})
	payload.GenerationConfig.Temperature = 0.1
	payload.GenerationConfig.MaxOutputTokens = 200

	body, err := json.Marshal(payload)
	if err != nil {
		return Verdict{}, fmt.Errorf("%w: encode request: %v", ErrJudgeUnavailable, err)
	}

	url := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		judge.model,
		judge.apiKey,
	)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Verdict{}, fmt.Errorf("%w: build request: %v", ErrJudgeUnavailable, err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := judge.httpClient.Do(request)
	if err != nil {
		return Verdict{}, fmt.Errorf("%w: %v", ErrJudgeUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return Verdict{}, fmt.Errorf("%w: status %d", ErrJudgeUnavailable, response.StatusCode)
	}

	decoded := geminiResponse{}
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return Verdict{}, fmt.Errorf("%w: decode response: %v", ErrJudgeUnavailable, err)
	}

	text := ""
	if len(decoded.Candidates) > 0 && len(decoded.Candidates[0].Content.Parts) > 0 {
		text = decoded.Candidates[0].Content.Parts[0].Text
	}
	return ParseVerdict(text)
}

// ParseVerdict digs the verdict JSON out of the model's reply, tolerating
// markdown fences around it. A reply with no parseable verdict is an error.
func ParseVerdict(text string) (Verdict, error) {
	match := verdictJSONPattern.FindString(text)
	if match == "" {
		return Verdict{}, fmt.Errorf("%w: no JSON in reply %q", ErrJudgeUnavailable, text)
	}

	verdict := Verdict{}
	if err := json.Unmarshal([]byte(match), &verdict); err != nil {
		return Verdict{}, fmt.Errorf("%w: malformed verdict: %v", ErrJudgeUnavailable, err)
	}
	if strings.TrimSpace(verdict.Reason) == "" {
		verdict.Reason = "No explanation given."
	}
	return verdict, nil
}
