package currency

import "testing"

func TestToDisplay(t *testing.T) {
	cases := []struct {
		minor int64
		want  int64
	}{
		{0, 0},
		{49, 0},
		{50, 1},
		{99, 1},
		{100, 1},
		{3900, 39},
		{8900, 89},
		{11000, 110},
		{14950, 150},
		{-150, -2},
	}
	for _, c := range cases {
		if got := ToDisplay(c.minor); got != c.want {
			t.Errorf("ToDisplay(%d) = %d, want %d", c.minor, got, c.want)
		}
	}
}

func TestDiscountPercent(t *testing.T) {
	cases := []struct {
		list, price int64
		want        int
	}{
		{110, 89, 19}, // 19.09 rounds down
		{50, 39, 22},  // 22.0
		{65, 52, 20},
		{199, 149, 25}, // 25.1 rounds down
		{100, 100, 0},
		{89, 110, 0}, // list below price never goes negative
		{0, 10, 0},
		{100, 0, 100},
	}
	for _, c := range cases {
		if got := DiscountPercent(c.list, c.price); got != c.want {
			t.Errorf("DiscountPercent(%d, %d) = %d, want %d", c.list, c.price, got, c.want)
		}
	}
}

// Minor-unit inputs from the catalog: price 8900, mrp 11000 must show
// as 89 and 110 with a 19% discount.
func TestDisplayAndDiscountTogether(t *testing.T) {
	price := ToDisplay(8900)
	mrp := ToDisplay(11000)
	if price != 89 || mrp != 110 {
		t.Fatalf("display = %d/%d, want 89/110", price, mrp)
	}
	if pct := DiscountPercent(mrp, price); pct != 19 {
		t.Fatalf("discount = %d, want 19", pct)
	}
}
