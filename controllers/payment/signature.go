package paymentControllers

import (
	"mistogo/config"
	"mistogo/middleware"
	"mistogo/utils"
	paymentValidators "mistogo/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// Signature signs a WayForPay purchase form for the SPA. The gateway itself is
// driven from the browser; the merchant secret never leaves the backend.
func Signature(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignature").(*paymentValidators.SignatureRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	cfg := config.AppConfig

	purchase := utils.WayForPayPurchase{
		MerchantAccount: cfg.WayForPayMerchant,
		MerchantDomain:  cfg.WayForPayDomain,
		OrderReference:  reqData.OrderReference,
		OrderDate:       reqData.OrderDate,
		Amount:          reqData.Amount,
		Currency:        reqData.Currency,
	}
	for _, p := range reqData.Products {
		purchase.ProductNames = append(purchase.ProductNames, p.Name)
		purchase.ProductCounts = append(purchase.ProductCounts, p.Count)
		purchase.ProductPrices = append(purchase.ProductPrices, p.Price)
	}

	signature := utils.PurchaseSignature(cfg.WayForPaySecret, purchase)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Signature generated successfully!", fiber.Map{
		"merchantAccount":    purchase.MerchantAccount,
		"merchantDomainName": purchase.MerchantDomain,
		"orderReference":     purchase.OrderReference,
		"orderDate":          purchase.OrderDate,
		"amount":             purchase.Amount,
		"currency":           purchase.Currency,
		"productName":        purchase.ProductNames,
		"productCount":       purchase.ProductCounts,
		"productPrice":       purchase.ProductPrices,
		"merchantSignature":  signature,
	})
}
