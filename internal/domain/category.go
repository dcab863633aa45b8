package domain

import "strings"

// Category is a transaction category. The canonical values are the
// Portuguese labels shown in the app; free-form overrides are allowed,
// which is why this is a string type rather than a closed enum.
type Category string

const (
	CategoryFood          Category = "Alimentação"
	CategoryTransport     Category = "Transporte"
	CategoryUtilities     Category = "Contas e Serviços"
	CategoryEntertainment Category = "Lazer"
	CategorySalary        Category = "Salário"
	CategoryHealth        Category = "Saúde"
	CategoryShopping      Category = "Compras"
	CategoryEducation     Category = "Educação"
	CategoryInvestment    Category = "Investimentos"
	CategoryOther         Category = "Outros"
	CategoryUncategorized Category = "Não categorizado"
	CategoryTransferLabel Category = "Transferência"
)

// categoryAliases maps normalized spellings to the canonical category.
// It covers the canonical labels themselves, the short forms the AI
// model tends to return, and English aliases.
var categoryAliases = map[string]Category{
	"alimentacao":      CategoryFood,
	"alimentação":      CategoryFood,
	"food":             CategoryFood,
	"transporte":       CategoryTransport,
	"transport":        CategoryTransport,
	"contas e servicos": CategoryUtilities,
	"contas e serviços": CategoryUtilities,
	"contas":           CategoryUtilities,
	"utilities":        CategoryUtilities,
	"lazer":            CategoryEntertainment,
	"entertainment":    CategoryEntertainment,
	"salario":          CategorySalary,
	"salário":          CategorySalary,
	"salary":           CategorySalary,
	"saude":            CategoryHealth,
	"saúde":            CategoryHealth,
	"health":           CategoryHealth,
	"compras":          CategoryShopping,
	"shopping":         CategoryShopping,
	"educacao":         CategoryEducation,
	"educação":         CategoryEducation,
	"education":        CategoryEducation,
	"investimentos":    CategoryInvestment,
	"investimento":     CategoryInvestment,
	"investment":       CategoryInvestment,
	"outros":           CategoryOther,
	"other":            CategoryOther,
	"nao categorizado": CategoryUncategorized,
	"não categorizado": CategoryUncategorized,
	"uncategorized":    CategoryUncategorized,
	"transferencia":    CategoryTransferLabel,
	"transferência":    CategoryTransferLabel,
	"transfer":         CategoryTransferLabel,
}

// ParseCategory maps a raw label to a known category. The mapping is
// total: any label that does not match a known category or alias,
// including the empty string, resolves to CategoryOther.
func ParseCategory(raw string) Category {
	key := strings.ToLower(strings.TrimSpace(raw))
	if cat, ok := categoryAliases[key]; ok {
		return cat
	}
	return CategoryOther
}
