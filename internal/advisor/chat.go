package advisor

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/pbarbosa/novabank/internal/domain"
)

const chatInstructionTemplate = `DADOS FINANCEIROS DO USUÁRIO (Contexto):
%s

INSTRUÇÕES:
Você é o Assistente Virtual do NovaBank.
Use os dados acima para responder perguntas sobre saldo, gastos específicos e datas.
Se a pergunta não for sobre finanças, responda educadamente que seu foco é ajudar com o banco.
Seja conciso, amigável e use formatação Markdown se necessário.`

const (
	chatOfflineReply  = "Estou em modo offline. Por favor, configure sua API Key para conversar comigo."
	chatFallbackReply = "Desculpe, tive um problema momentâneo de conexão. Tente novamente."
	chatPrimedReply   = "Entendido. Tenho acesso aos dados financeiros e estou pronto para ajudar."
)

// Chat runs one conversational turn. contextTxs is injected read-only as
// the opening turn of the conversation so the model can answer questions
// about balance and spending; at most ContextWindowSize transactions are
// sent. Failures degrade to a canned reply, never an error.
func (s *Service) Chat(ctx context.Context, history []domain.ChatMessage, message string, contextTxs []domain.Transaction) string {
	if !s.Live() {
		return chatOfflineReply
	}

	if len(contextTxs) > ContextWindowSize {
		contextTxs = contextTxs[:ContextWindowSize]
	}
	data, err := json.Marshal(simplify(contextTxs))
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to marshal chat context")
		return chatFallbackReply
	}

	contents := []*genai.Content{
		genai.NewContentFromText(fmt.Sprintf(chatInstructionTemplate, data), genai.RoleUser),
		genai.NewContentFromText(chatPrimedReply, genai.RoleModel),
	}
	for _, turn := range history {
		role := genai.Role(genai.RoleUser)
		if turn.Role == "model" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.7),
	}

	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	reply, err := s.generate(callCtx, contents, cfg)
	if err != nil || reply == "" {
		s.log.Error().Err(err).Msg("Gemini chat call failed")
		return chatFallbackReply
	}
	return reply
}
