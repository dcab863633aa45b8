package advisor

import (
	"context"
	"encoding/json"

	"google.golang.org/genai"

	"github.com/pbarbosa/novabank/internal/domain"
)

// simplifiedTx is the trimmed transaction shape sent to the model.
// Only the fields the analysis needs, to keep the context window small.
type simplifiedTx struct {
	Date        string  `json:"date"`
	Description string  `json:"desc"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"cat"`
}

func simplify(txs []domain.Transaction) []simplifiedTx {
	out := make([]simplifiedTx, 0, len(txs))
	for _, tx := range txs {
		out = append(out, simplifiedTx{
			Date:        tx.Date,
			Description: tx.Description,
			Amount:      tx.Amount,
			Category:    string(tx.Category),
		})
	}
	return out
}

const analysisInstruction = `Analise os seguintes dados bancários recentes.
Atue como um consultor financeiro sênior.
Identifique padrões de gastos, oportunidades de economia e anomalias.`

// analysisSchema constrains the model to the exact AnalysisResult shape.
var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": {
			Type:        genai.TypeString,
			Description: "Um resumo executivo curto e direto sobre a saúde financeira do usuário.",
		},
		"savingsTips": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "3 dicas táticas e acionáveis para economizar dinheiro baseadas nos gastos.",
		},
		"anomalies": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "Lista de transações suspeitas, muito altas ou fora do padrão.",
		},
	},
	Required: []string{"summary", "savingsTips", "anomalies"},
}

func demoAnalysis() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Summary: "Modo demonstração (Sem API Key). Adicione sua chave para análise real.",
		SavingsTips: []string{
			"Configure a API Key no ambiente.",
			"Use o painel de configurações.",
			"Verifique a documentação.",
		},
		Anomalies: []string{},
	}
}

func fallbackAnalysis() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Summary: "Não foi possível realizar a análise completa no momento.",
		SavingsTips: []string{
			"Tente reduzir gastos supérfluos.",
			"Revise suas assinaturas mensais.",
			"Poupe 10% da renda.",
		},
		Anomalies: []string{"Erro na conexão com IA."},
	}
}

// Analyze runs the structured financial analysis over a bounded recent
// slice of the ledger. It never fails the caller: any model error,
// timeout or malformed response degrades to a static fallback result.
func (s *Service) Analyze(ctx context.Context, txs []domain.Transaction) *domain.AnalysisResult {
	if !s.Live() {
		return demoAnalysis()
	}

	if len(txs) > ContextWindowSize {
		txs = txs[:ContextWindowSize]
	}
	data, err := json.Marshal(simplify(txs))
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to marshal analysis context")
		return fallbackAnalysis()
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(analysisInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    analysisSchema,
	}
	contents := []*genai.Content{
		genai.NewContentFromText(string(data), genai.RoleUser),
	}

	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	raw, err := s.generate(callCtx, contents, cfg)
	if err != nil {
		s.log.Error().Err(err).Msg("Gemini analysis call failed")
		return fallbackAnalysis()
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &result); err != nil {
		s.log.Error().Err(err).Str("raw", raw).Msg("Gemini analysis returned malformed JSON")
		return fallbackAnalysis()
	}
	if result.Anomalies == nil {
		result.Anomalies = []string{}
	}
	return &result
}
