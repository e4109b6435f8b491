package shopclient

// CartLine is one product in the cart with its chosen quantity.
type CartLine struct {
	Product  Product
	Quantity int
}

// Cart is the browsing session's client-local cart. It lives only in
// memory for the lifetime of the session and is never sent to the
// server. Like the rest of the client state it belongs to a single
// event loop and is not safe for concurrent use.
type Cart struct {
	lines []CartLine
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add puts qty units of product in the cart. Adding a product already
// present increments its line instead of duplicating it. Quantities
// below one are ignored.
func (c *Cart) Add(product Product, qty int) {
	if qty < 1 {
		return
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == product.ID {
			c.lines[i].Quantity += qty
			return
		}
	}
	c.lines = append(c.lines, CartLine{Product: product, Quantity: qty})
}

// Remove drops the product's line from the cart.
func (c *Cart) Remove(productID string) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQty sets the product's quantity. A quantity below one removes the
// line, so quantities never go negative.
func (c *Cart) SetQty(productID string, qty int) {
	if qty < 1 {
		c.Remove(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines[i].Quantity = qty
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// TotalItems is the sum of all line quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the sum of price times quantity across all lines.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, line := range c.lines {
		total += line.Product.Price * float64(line.Quantity)
	}
	return total
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}
