package bank

import "strconv"

// Formatter renders currency amounts for user-facing messages and the audit
// log. The zero value formats as a bare number.
type Formatter struct {
	// Name is the singular currency name, e.g. "coin".
	Name string
	// Plural is the plural currency name, e.g. "coins".
	Plural string
	// Short is the compact prefix used when UseShort is set, e.g. "c".
	Short string
	// UseShort switches to the compact "<short><amount>" form.
	UseShort bool
}

// Money renders an amount: "c100" in short form, otherwise "100 coins"
// (singular name when the amount is exactly 1).
func (f Formatter) Money(amount int64) string {
	if f.UseShort {
		return f.Short + strconv.FormatInt(amount, 10)
	}
	s := strconv.FormatInt(amount, 10)
	switch {
	case f.Name == "" && f.Plural == "":
		return s
	case amount == 1 && f.Name != "":
		return s + " " + f.Name
	default:
		return s + " " + f.Plural
	}
}
