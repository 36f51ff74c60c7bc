package domain

// Product — товар каталога. Неизменяем после создания: ядро корзины
// читает товары, но никогда их не мутирует.
type Product struct {
	ID int64
	// Name — отображаемое название товара.
	Name string
	// PriceMinor — цена в минимальных денежных единицах (например, копейки).
	PriceMinor int64
	// ImageURL — ссылка на изображение товара.
	ImageURL string
}

// ValidateInvariants проверяет базовые инварианты товара.
func (p Product) ValidateInvariants() []error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.PriceMinor < 0 {
		errs = append(errs, ErrProductPriceNegative)
	}
	return errs
}
