package utils

import (
	"net/url"
)

// BuildUPILink constructs the upi://pay deep link a member's phone opens to
// start a transfer. The link is a convenience only; nothing verifies that
// the transfer actually happened.
func BuildUPILink(upiID, payeeName string, amount float64, note string) string {
	params := url.Values{}
	params.Set("pa", upiID)
	params.Set("pn", payeeName)
	params.Set("am", FormatMoney(amount))
	params.Set("cu", "INR")
	params.Set("tn", note)
	return "upi://pay?" + params.Encode()
}
