package domain

// Currency enumerates the currencies accounts can be denominated in.
type Currency string

const (
	GBP Currency = "GBP"
)

// IsValid checks whether the currency is one the bank supports.
func (c Currency) IsValid() bool {
	return c == GBP
}
