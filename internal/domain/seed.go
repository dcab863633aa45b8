package domain

// seedTransactions is the fixed list the ledger starts from. There is no
// persistence: a restart always resets to exactly these entries.
var seedTransactions = []Transaction{
	{
		ID:          "t1",
		Date:        "2026-01-05",
		Description: "Transferência Recebida",
		Amount:      5200.00,
		Type:        TypeDeposit,
		Category:    CategorySalary,
		Merchant:    "Pagamento Tech",
		Status:      StatusCompleted,
	},
	{
		ID:          "t2",
		Date:        "2026-01-10",
		Description: "iFood *Lanche",
		Amount:      -85.50,
		Type:        TypePayment,
		Category:    CategoryFood,
		Merchant:    "iFood",
		Status:      StatusCompleted,
	},
	{
		ID:          "t3",
		Date:        "2026-01-12",
		Description: "Uber do Brasil",
		Amount:      -24.90,
		Type:        TypePayment,
		Category:    CategoryTransport,
		Merchant:    "Uber",
		Status:      StatusCompleted,
	},
	{
		ID:          "t4",
		Date:        "2026-01-15",
		Description: "Netflix.com",
		Amount:      -55.90,
		Type:        TypePayment,
		Category:    CategoryEntertainment,
		Merchant:    "Netflix",
		Status:      StatusCompleted,
	},
	{
		ID:          "t5",
		Date:        "2026-01-18",
		Description: "Amazon Prime",
		Amount:      -19.90,
		Type:        TypePayment,
		Category:    CategoryShopping,
		Merchant:    "Amazon",
		Status:      StatusCompleted,
	},
	{
		ID:          "t6",
		Date:        "2026-01-20",
		Description: "Academia SmartFit",
		Amount:      -129.90,
		Type:        TypePayment,
		Category:    CategoryHealth,
		Merchant:    "SmartFit",
		Status:      StatusCompleted,
	},
	{
		ID:          "t7",
		Date:        "2026-01-25",
		Description: "Restaurante Coco Bambu",
		Amount:      -340.00,
		Type:        TypePayment,
		Category:    CategoryFood,
		Merchant:    "Coco Bambu",
		Status:      StatusCompleted,
	},
	{
		ID:          "t_pend_1",
		Date:        "2026-02-05",
		Description: "Depósito Bloqueado",
		Amount:      1500.00,
		Type:        TypeDeposit,
		Category:    CategoryOther,
		Merchant:    "Cliente Externo",
		Status:      StatusPending,
	},
	{
		ID:          "t_pend_2",
		Date:        "2026-02-10",
		Description: "Conta de Luz (Agendado)",
		Amount:      -250.00,
		Type:        TypePayment,
		Category:    CategoryUtilities,
		Merchant:    "Enel Distribuição",
		Status:      StatusPending,
	},
}

// SeedTransactions returns a fresh copy of the seed list so callers can
// never mutate the canonical data.
func SeedTransactions() []Transaction {
	out := make([]Transaction, len(seedTransactions))
	copy(out, seedTransactions)
	return out
}
