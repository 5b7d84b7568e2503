package quote_discount

// Request модель запроса расчета скидки
type Request struct {
	BusinessID    int64
	ServiceID     int64
	VariantID     *int64
	LocationID    *int64
	PeopleCount   int
	CustomerPhone string
	VoucherCode   string
}

// Response модель ответа с итоговой стоимостью
type Response struct {
	BasePriceCents int64
	DiscountCents  int64
	DiscountName   *string
	DiscountID     *int64
	TotalCents     int64
	Currency       string
}
