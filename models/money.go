package models

import "fmt"

// Money is an amount in minor currency units (paise). All arithmetic in the
// settlement engine happens on integers; rupee rendering is display-only.
type Money int64

// Rupees returns the amount as a floating-point rupee value.
func (m Money) Rupees() float64 {
	return float64(m) / 100
}

// String renders the amount as a plain decimal string, e.g. "1234.50".
func (m Money) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%d.%02d", sign, m/100, m%100)
}
