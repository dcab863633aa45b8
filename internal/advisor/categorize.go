package advisor

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/pbarbosa/novabank/internal/domain"
)

const categorizePromptTemplate = `Classifique a transação: %q valor R$%.2f.
Categorias permitidas: Alimentação, Transporte, Contas, Lazer, Saúde, Compras, Educação, Investimentos.
Retorne APENAS a palavra da categoria.`

// Categorize asks the model for a single category label for a
// transaction description. The raw label always passes through the total
// domain.ParseCategory mapping, so the result is a known category no
// matter what the model returns. The suggestion is the caller's to
// apply; it is never written to the ledger here.
func (s *Service) Categorize(ctx context.Context, description string, amount float64) domain.Category {
	if !s.Live() {
		return domain.CategoryOther
	}

	contents := []*genai.Content{
		genai.NewContentFromText(fmt.Sprintf(categorizePromptTemplate, description, amount), genai.RoleUser),
	}

	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	raw, err := s.generate(callCtx, contents, nil)
	if err != nil {
		s.log.Error().Err(err).Str("description", description).Msg("Gemini categorization call failed")
		return domain.CategoryOther
	}

	label := strings.Trim(strings.TrimSpace(raw), `'"`)
	return domain.ParseCategory(label)
}
