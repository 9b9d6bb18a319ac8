package currency

// ToDisplay converts an integer minor-unit amount (paise) to its
// major-unit display value (rupees), rounding to the nearest rupee.
func ToDisplay(minor int64) int64 {
	if minor < 0 {
		return -((-minor + 50) / 100)
	}
	return (minor + 50) / 100
}

// DiscountPercent derives the discount percentage from a list price and
// a selling price given in the same unit, rounded to the nearest whole
// percent. A list price at or below the selling price yields 0.
func DiscountPercent(list, price int64) int {
	if list <= 0 || list <= price {
		return 0
	}
	return int(((list-price)*100 + list/2) / list)
}
