package models

import "fjacquet/csv-ofx/internal/converterror"

// ColumnMap describes which zero-based CSV column feeds each semantic field.
// The four indices must be distinct; every data row must have at least Max()+1
// cells.
type ColumnMap struct {
	Date   int
	Memo   int
	Title  int
	Amount int
}

// NewColumnMap builds a ColumnMap from the usecols convention of the CLI:
// four indices in the order date, memo, title, amount.
func NewColumnMap(indices []int) (ColumnMap, error) {
	if len(indices) != 4 {
		return ColumnMap{}, &converterror.ConfigError{
			Field:  "usecols",
			Reason: "exactly 4 column indices are required (date memo title amount)",
		}
	}
	cm := ColumnMap{
		Date:   indices[0],
		Memo:   indices[1],
		Title:  indices[2],
		Amount: indices[3],
	}
	if err := cm.Validate(); err != nil {
		return ColumnMap{}, err
	}
	return cm, nil
}

// Validate checks that all indices are non-negative and pairwise distinct.
func (c ColumnMap) Validate() error {
	seen := make(map[int]string, 4)
	for _, col := range []struct {
		name  string
		index int
	}{
		{"date", c.Date},
		{"memo", c.Memo},
		{"title", c.Title},
		{"amount", c.Amount},
	} {
		if col.index < 0 {
			return &converterror.ConfigError{
				Field:  "usecols",
				Reason: "column index for " + col.name + " must not be negative",
			}
		}
		if other, ok := seen[col.index]; ok {
			return &converterror.ConfigError{
				Field:  "usecols",
				Reason: "columns " + other + " and " + col.name + " share the same index",
			}
		}
		seen[col.index] = col.name
	}
	return nil
}

// Max returns the highest configured column index.
func (c ColumnMap) Max() int {
	max := c.Date
	for _, i := range []int{c.Memo, c.Title, c.Amount} {
		if i > max {
			max = i
		}
	}
	return max
}
