package models

// All lists the persisted models in dependency order.
func All() []any {
	return []any{
		&Customer{},
		&Admin{},
		&Product{},
		&ProductVariant{},
		&Address{},
		&Blog{},
		&BlogTag{},
		&Wishlist{},
		&WishlistItem{},
	}
}
