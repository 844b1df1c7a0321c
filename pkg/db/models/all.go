package models

// All lists every persisted model, parents first, for AutoMigrate in tests
// and sqlite-backed runs.
func All() []any {
	return []any{
		&Seller{},
		&Product{},
		&ProductVariant{},
		&Order{},
		&OrderItem{},
		&Payment{},
		&OutboxEvent{},
	}
}
