package domain

import "time"

// OrderLine — снимок позиции заказа. Копирует название и цену товара
// по значению в момент оформления: последующие изменения каталога
// не затрагивают уже размещённый заказ.
type OrderLine struct {
	ProductID int64
	// NameSnapshot — название товара на момент оформления.
	NameSnapshot string
	// PriceMinorSnapshot — цена за единицу в минимальных денежных единицах.
	PriceMinorSnapshot int64
	// QuantitySnapshot — количество из позиции корзины.
	QuantitySnapshot int32
}

// Order — неизменяемая запись о подтверждённом намерении покупки.
// Создаётся ровно один раз при успешном оформлении и далее не мутируется.
type Order struct {
	ID         string
	CustomerID int64
	OrderedAt  time.Time
	Lines      []OrderLine
}

// TotalMinor возвращает сумму заказа по снимкам цен и количеств.
func (o Order) TotalMinor() int64 {
	var total int64
	for _, line := range o.Lines {
		total += int64(line.QuantitySnapshot) * line.PriceMinorSnapshot
	}
	return total
}

// ValidateInvariants проверяет базовые инварианты заказа перед сохранением.
func (o Order) ValidateInvariants() []error {
	var errs []error
	if o.CustomerID == 0 {
		errs = append(errs, ErrCustomerNotFound)
	}
	if len(o.Lines) == 0 {
		errs = append(errs, ErrEmptyOrder)
	}
	for _, line := range o.Lines {
		if line.QuantitySnapshot <= 0 {
			errs = append(errs, ErrInvalidQuantity)
		}
		if line.PriceMinorSnapshot < 0 {
			errs = append(errs, ErrProductPriceNegative)
		}
	}
	return errs
}
