package utils

import (
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"
)

// WayForPayPurchase holds the fields of a gateway purchase request that
// participate in the merchant signature, in signing order.
type WayForPayPurchase struct {
	MerchantAccount string
	MerchantDomain  string
	OrderReference  string
	OrderDate       int64
	Amount          string
	Currency        string
	ProductNames    []string
	ProductCounts   []string
	ProductPrices   []string
}

// SignFields computes the WayForPay HMAC-MD5 signature over the
// semicolon-joined field values.
func SignFields(secret string, fields []string) string {
	mac := hmac.New(md5.New, []byte(secret))
	mac.Write([]byte(strings.Join(fields, ";")))
	return hex.EncodeToString(mac.Sum(nil))
}

// PurchaseSignature computes the merchantSignature for a purchase form.
func PurchaseSignature(secret string, p WayForPayPurchase) string {
	fields := []string{
		p.MerchantAccount,
		p.MerchantDomain,
		p.OrderReference,
		strconv.FormatInt(p.OrderDate, 10),
		p.Amount,
		p.Currency,
	}
	fields = append(fields, p.ProductNames...)
	fields = append(fields, p.ProductCounts...)
	fields = append(fields, p.ProductPrices...)
	return SignFields(secret, fields)
}

// VerifyCallbackSignature checks the signature on a gateway callback.
func VerifyCallbackSignature(secret string, fields []string, signature string) bool {
	expected := SignFields(secret, fields)
	return hmac.Equal([]byte(expected), []byte(signature))
}
