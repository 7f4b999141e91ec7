// services/briefing.go
package services

import (
	"context"
	"fmt"
	"strings"

	"pitstop-backend/models"
	"pitstop-backend/utils"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Shown whenever the generative call fails; briefing errors are never fatal.
const BriefingOfflineMessage = "Assistente IA offline. Verifique sua conexão ou chave de API."

type BriefingService struct {
	model *genai.GenerativeModel
}

func NewBriefingService(apiKey string) (*BriefingService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.5-flash")
	return &BriefingService{model: model}, nil
}

// GenerateDailyBriefing produces short operational commentary for a day's
// schedule. Any failure degrades to the static offline message.
func (s *BriefingService) GenerateDailyBriefing(ctx context.Context, date string, appointments []models.Appointment) string {
	var details strings.Builder
	for _, apt := range appointments {
		if apt.Status == models.StatusCancelled {
			continue
		}
		fmt.Fprintf(&details, "- %s: %s (%d min) - Veículo: %s\n",
			apt.Time, apt.ServiceName, apt.DurationMinutes, apt.VehicleModel)
	}

	prompt := fmt.Sprintf(`Atue como um gerente experiente de Lava Rápido. Analise a agenda abaixo para o dia %s.

Agendamentos:
%s
Gere um resumo curto, objetivo e em Português do Brasil.
Use estritamente este formato:

📊 **Resumo da Carga:** [Uma frase sobre a intensidade do dia: Leve, Moderada ou Pesada]

💡 **3 Sugestões Operacionais:**
1. [Sugestão prática 1 baseada nos horários/tipos de carro]
2. [Sugestão prática 2]
3. [Sugestão prática 3]

Se não houver agendamentos, diga apenas que o dia está livre e sugira ações de marketing.
Mantenha o tom profissional e motivador.`, date, details.String())

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		utils.GetLogger().Warn("briefing generation failed", zap.Error(err))
		return BriefingOfflineMessage
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		break
	}

	if sb.Len() == 0 {
		return "Não foi possível gerar o resumo no momento."
	}
	return sb.String()
}
