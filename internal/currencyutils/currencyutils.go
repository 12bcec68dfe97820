// Package currencyutils normalizes the amount notations found in German bank
// exports into decimal values.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbolRe = regexp.MustCompile(`[€$£\sA-Za-z]`)

// ParseAmount parses a string amount into a decimal value. It accepts the
// notations produced by German banking exports: "1.890,41", "1890.41",
// "1'234.56", "EUR 45,67", trailing-sign negatives ("45,67-") and
// parenthesized negatives ("(45,67)").
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount converts bank amount notations to the plain form accepted
// by decimal.NewFromString.
func StandardizeAmount(amountStr string) string {
	amountStr = strings.TrimSpace(amountStr)

	// Parenthesized negatives: (45,67) -> -45,67
	negative := false
	if strings.HasPrefix(amountStr, "(") && strings.HasSuffix(amountStr, ")") {
		negative = true
		amountStr = amountStr[1 : len(amountStr)-1]
	}
	// Trailing sign notation: 45,67- / 45,67+
	if strings.HasSuffix(amountStr, "-") {
		negative = true
		amountStr = strings.TrimSuffix(amountStr, "-")
	} else if strings.HasSuffix(amountStr, "+") {
		amountStr = strings.TrimSuffix(amountStr, "+")
	}
	if strings.HasPrefix(amountStr, "-") {
		negative = true
		amountStr = strings.TrimPrefix(amountStr, "-")
	}

	// Strip currency symbols, codes and whitespace
	amountStr = currencySymbolRe.ReplaceAllString(amountStr, "")

	// Apostrophes are always thousands separators (1'234.56)
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	if strings.Contains(amountStr, ",") {
		if strings.Contains(amountStr, ".") {
			if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
				// German format 1.890,41 -> 1890.41
				amountStr = strings.ReplaceAll(amountStr, ".", "")
				amountStr = strings.ReplaceAll(amountStr, ",", ".")
			} else {
				// Anglo format 1,890.41 -> 1890.41
				amountStr = strings.ReplaceAll(amountStr, ",", "")
			}
		} else {
			parts := strings.Split(amountStr, ",")
			if len(parts) == 2 && len(parts[1]) <= 2 {
				// Decimal comma: 1890,41 -> 1890.41
				amountStr = strings.ReplaceAll(amountStr, ",", ".")
			} else {
				// Thousands comma: 1,234 -> 1234
				amountStr = strings.ReplaceAll(amountStr, ",", "")
			}
		}
	}

	if negative && amountStr != "" {
		amountStr = "-" + amountStr
	}
	return amountStr
}

// FormatAmount renders an amount with exactly two decimal places, rounding
// half away from zero.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
