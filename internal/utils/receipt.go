package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateReceipt returns a gateway order receipt in the format rcpt_<32 hex>.
// Razorpay caps receipts at 40 characters.
func GenerateReceipt() string {
	return "rcpt_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
