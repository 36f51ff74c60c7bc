package domain

// CartItem — позиция корзины: намерение покупателя купить товар.
// Позиция с нулевым количеством не существует — вместо обнуления её удаляют.
type CartItem struct {
	ID         int64
	CustomerID int64
	ProductID  int64
	// Quantity всегда >= 1; изменяется только через CartRepository.UpdateQuantity.
	Quantity int32
}

// OwnedBy сообщает, принадлежит ли позиция указанному покупателю.
func (c CartItem) OwnedBy(customerID int64) bool {
	return c.CustomerID == customerID
}

// CartItemView — позиция корзины, дополненная данными товара.
// Собирается сервисным слоем для ответов наружу.
type CartItemView struct {
	CartItemID int64
	Quantity   int32
	Product    Product
}
