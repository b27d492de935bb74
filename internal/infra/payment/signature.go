package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignCheckout produces the hex HMAC-SHA256 signature over
// orderID + "|" + paymentID that the gateway attaches to a successful
// checkout callback.
func SignCheckout(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyCheckoutSignature compares the presented signature against a freshly
// computed one in constant time. Non-hex input fails closed.
func VerifyCheckoutSignature(secret, orderID, paymentID, signature string) bool {
	presented, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hmac.Equal(presented, mac.Sum(nil))
}
