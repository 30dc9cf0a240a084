package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/NeerajGithb/furniture-client-sub000/internal/transport/http/handler"
)

type Handlers struct {
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Address  *handler.AddressHandler
	Order    *handler.OrderHandler
	Wishlist *handler.WishlistHandler
	Catalog  *handler.CatalogHandler
}

func RegisterRoutes(app *fiber.App, h *Handlers) {
	api := app.Group("/api")

	cart := api.Group("/cart")
	cart.Get("", h.Cart.Get)
	cart.Post("", h.Cart.AddItem)
	cart.Delete("", h.Cart.Clear)
	cart.Get("/totals", h.Cart.Totals)
	cart.Patch("/items/:productId", h.Cart.UpdateQuantity)
	cart.Delete("/items/:productId", h.Cart.RemoveItem)
	cart.Post("/items/:productId/toggle", h.Cart.ToggleSelection)
	cart.Post("/items/:productId/insurance", h.Cart.ToggleInsurance)

	checkout := api.Group("/checkout")
	checkout.Post("", h.Checkout.Enter)
	checkout.Get("", h.Checkout.Get)
	checkout.Delete("", h.Checkout.Cancel)
	checkout.Patch("/address", h.Checkout.SelectAddress)
	checkout.Patch("/payment-method", h.Checkout.SelectPaymentMethod)
	checkout.Post("/items/:productId/insurance", h.Checkout.ToggleInsurance)
	checkout.Post("/order", h.Checkout.PlaceOrder)

	address := api.Group("/address")
	address.Get("", h.Address.List)
	address.Post("", h.Address.Create)
	address.Patch("/:id", h.Address.Update)
	address.Delete("/:id", h.Address.Delete)

	orders := api.Group("/orders")
	orders.Get("", h.Order.List)
	orders.Get("/:id", h.Order.Get)
	orders.Post("/:id/cancel", h.Order.Cancel)

	wishlist := api.Group("/wishlist")
	wishlist.Get("", h.Wishlist.List)
	wishlist.Post("", h.Wishlist.Add)
	wishlist.Delete("/:id", h.Wishlist.Remove)

	catalog := api.Group("/catalog")
	catalog.Get("/products", h.Catalog.Products)
	catalog.Get("/products/:id", h.Catalog.Product)
	catalog.Get("/facets", h.Catalog.Facets)
}
