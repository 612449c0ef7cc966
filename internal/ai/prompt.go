package ai

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/models"
	"github.com/samber/lo"
)

const (
	medicalBlockStart = "=== PATIENT MEDICAL INFORMATION ==="
	medicalBlockEnd   = "=== END PATIENT INFORMATION ==="
)

// HistoryMessage is a prior transcript entry replayed as context.
type HistoryMessage struct {
	Role    models.Role
	Content string
	Images  []string
}

type Request struct {
	Message string
	Form    *models.MedicalForm
	Images  []string
	History []HistoryMessage
}

// Reply is the outcome of one generation. A degraded reply carries
// FallbackResponse as Text and the provider failure in Err.
type Reply struct {
	Text     string
	Degraded bool
	Err      error
}

// Assembler turns a medical form and conversation context into a provider
// request and masks provider failures behind FallbackResponse.
type Assembler struct {
	provider Provider
	timeout  time.Duration
}

func NewAssembler(provider Provider, timeout time.Duration) *Assembler {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Assembler{provider: provider, timeout: timeout}
}

// Respond generates the assistant reply for req. The returned error is non-nil
// only when ctx itself was cancelled; provider failures and provider timeouts
// produce a degraded Reply instead.
func (a *Assembler) Respond(ctx context.Context, req Request) (Reply, error) {
	contents := BuildContents(req)
	images := len(contents[len(contents)-1].Parts) - 1
	slog.Info("generating AI response", "provider", a.provider.Name(), "turns", len(contents), "images", images)

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	text, err := a.provider.Generate(callCtx, contents)
	if ctx.Err() != nil {
		return Reply{}, ctx.Err()
	}
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyResponse
	}
	if err != nil {
		slog.Error("AI generation failed, using fallback response",
			"operation", "ai.generate", "provider", a.provider.Name(), "error", err,
			"latency_ms", float64(time.Since(start).Milliseconds()))
		return Reply{Text: FallbackResponse, Degraded: true, Err: err}, nil
	}

	slog.Info("AI response generated", "length", len(text), "latency_ms", float64(time.Since(start).Milliseconds()))
	return Reply{Text: text}, nil
}

// InitialAssessment asks for a structured first summary of the form.
func (a *Assembler) InitialAssessment(ctx context.Context, form *models.MedicalForm) (Reply, error) {
	return a.Respond(ctx, Request{Message: InitialAssessmentPrompt, Form: form})
}

// BuildContents lays out the history turns followed by the new user turn.
// Every turn opens with a non-empty text part followed by the well-formed
// images; the new turn's text is the medical block plus the message.
func BuildContents(req Request) []Content {
	contents := make([]Content, 0, len(req.History)+2)
	for _, h := range req.History {
		role := RoleUser
		if h.Role == models.RoleAssistant {
			role = RoleModel
		}
		text := strings.TrimSpace(h.Content)
		if text == "" {
			if role == RoleModel {
				continue
			}
			// Image-only turns were answered as a general analysis request.
			text = DefaultAnalysisPrompt
		}
		if len(contents) == 0 && role == RoleModel {
			// Replayed transcripts open with the initial assessment.
			contents = append(contents, Content{Role: RoleUser, Parts: []Part{{Text: InitialAssessmentPrompt}}})
		}
		parts := []Part{{Text: text}}
		if role == RoleUser {
			parts = append(parts, imageParts(h.Images)...)
		}
		contents = appendTurn(contents, Content{Role: role, Parts: parts})
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		message = DefaultAnalysisPrompt
	}
	text := message
	if req.Form != nil {
		text = BuildMedicalContext(req.Form) + "\n\n" + message
	}

	parts := append([]Part{{Text: text}}, imageParts(req.Images)...)
	return appendTurn(contents, Content{Role: RoleUser, Parts: parts})
}

// appendTurn merges consecutive turns from the same role.
func appendTurn(contents []Content, c Content) []Content {
	if n := len(contents); n > 0 && contents[n-1].Role == c.Role {
		last := &contents[n-1]
		texts := lo.Filter(c.Parts, func(p Part, _ int) bool { return !p.IsImage() })
		images := lo.Filter(c.Parts, func(p Part, _ int) bool { return p.IsImage() })
		for _, t := range texts {
			last.Parts[0].Text += "\n\n" + t.Text
		}
		last.Parts = append(last.Parts, images...)
		return contents
	}
	return append(contents, c)
}

func imageParts(images []string) []Part {
	parts := make([]Part, 0, len(images))
	for _, img := range images {
		if p, ok := ParseDataURL(img); ok {
			parts = append(parts, p)
		}
	}
	return parts
}

// ParseDataURL accepts only data:image/<type>;base64,<payload>.
func ParseDataURL(s string) (Part, bool) {
	if !strings.HasPrefix(s, "data:image/") {
		return Part{}, false
	}
	header, data, ok := strings.Cut(s, ",")
	if !ok || data == "" {
		return Part{}, false
	}
	mime, enc, ok := strings.Cut(strings.TrimPrefix(header, "data:"), ";")
	if !ok || enc != "base64" || mime == "image/" {
		return Part{}, false
	}
	return Part{MimeType: mime, Data: data}, true
}

// BuildMedicalContext renders the form between the patient information markers.
// Optional fields and meals appear only when they have content.
func BuildMedicalContext(form *models.MedicalForm) string {
	var sb strings.Builder
	sb.WriteString(medicalBlockStart + "\n")
	sb.WriteString("Name: " + form.Name + "\n")
	sb.WriteString("Age: " + strconv.Itoa(form.Age) + " years\n")
	sb.WriteString("Gender: " + form.Gender + "\n")
	sb.WriteString("Weight: " + form.Weight + "\n")
	sb.WriteString("Height: " + form.Height + "\n")

	if v := models.Text(form.BloodType); v != "" {
		sb.WriteString("Blood Type: " + v + "\n")
	}

	sections := []struct {
		label string
		value *string
	}{
		{"Current Health Issues", form.CurrentComplications},
		{"Chronic Conditions", form.ChronicConditions},
		{"Current Medications", form.Medications},
		{"Known Allergies", form.Allergies},
	}
	for _, s := range sections {
		if v := models.Text(s.value); v != "" {
			sb.WriteString("\n" + s.label + ":\n" + v + "\n")
		}
	}

	meals := lo.Compact([]string{
		labeled("Breakfast", form.BreakfastDetails),
		labeled("Lunch", form.LunchDetails),
		labeled("Dinner", form.DinnerDetails),
	})
	if len(meals) > 0 {
		sb.WriteString("\nDiet Information:\n" + strings.Join(meals, "\n") + "\n")
	}

	sb.WriteString("\n" + medicalBlockEnd)
	return sb.String()
}

func labeled(label string, value *string) string {
	if v := models.Text(value); v != "" {
		return label + ": " + v
	}
	return ""
}
