// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package advent

import "github.com/dustin/go-humanize"

// FormatCurrency renders a whole-dollar amount, e.g. "$1,234" or "-$50".
func FormatCurrency(amount int) string {
	if amount < 0 {
		return "-$" + humanize.Comma(-int64(amount))
	}
	return "$" + humanize.Comma(int64(amount))
}
