package routes

import (
	"net/http"
	"time"

	"github.com/shirshak001/JEWEL/app/controllers"
	"github.com/shirshak001/JEWEL/pkg/middleware"
	"github.com/shirshak001/JEWEL/pkg/rbac"
	"github.com/shirshak001/JEWEL/pkg/router"
	"github.com/shirshak001/JEWEL/pkg/session"
)

// Controllers bundles the handler set RegisterAPI wires up.
type Controllers struct {
	Products   *controllers.ProductController
	Cart       *controllers.CartController
	Orders     *controllers.OrderController
	Payments   *controllers.PaymentController
	Auth       *controllers.AuthController
	Inventory  *controllers.InventoryController
	Categories *controllers.CategoryController
	Stats      *controllers.StatsController
	Uploads    *controllers.UploadController
	Alerts     *controllers.AlertController
}

// RegisterAPI mounts every route. The storefront surface is anonymous;
// everything under /api/admin requires a valid admin session.
func RegisterAPI(r *router.Router, c Controllers, sessions *session.Store) {
	r.Get("/healthz", "", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	})

	api := r.Group("/api")

	// Storefront catalogue.
	api.Get("/products", "products.index", c.Products.Index)
	api.Get("/products/lists/featured", "products.featured", c.Products.Featured)
	api.Get("/products/related/{id}", "products.related", c.Products.Related)
	api.Get("/products/{slug}", "products.show", c.Products.Show)
	api.Get("/categories", "categories.tree", c.Categories.Tree)
	api.Get("/categories/{slug}", "categories.show", c.Categories.Show)

	// Cart, addressed by the X-Cart-ID header.
	api.Get("/cart/items", "cart.show", c.Cart.Show)
	api.Post("/cart/items", "cart.add", c.Cart.AddItem)
	api.Put("/cart/items/{productId}", "cart.update", c.Cart.UpdateItem)
	api.Delete("/cart/items/{productId}", "cart.remove", c.Cart.RemoveItem)
	api.Delete("/cart", "cart.clear", c.Cart.Clear)

	// Checkout and payments.
	api.Post("/orders", "orders.place", c.Orders.Place, middleware.RateLimit(10, time.Minute))
	api.Get("/orders/{orderNumber}", "orders.show", c.Orders.Show)
	api.Post("/payments/create-order", "payments.create", c.Payments.CreateOrder)
	api.Post("/payments/verify", "payments.verify", c.Payments.Verify)
	api.Post("/payments/webhook", "payments.webhook", c.Payments.Webhook)

	// Admin auth. Login is rate limited against credential stuffing; the
	// other two need a live session.
	authed := middleware.Auth(sessions)
	api.Post("/auth/login", "auth.login", c.Auth.Login, middleware.RateLimit(5, time.Minute))
	api.Post("/auth/logout", "auth.logout", c.Auth.Logout, authed)
	api.Get("/auth/session", "auth.session", c.Auth.Session, authed)

	editors := rbac.HasRole(rbac.RoleAdmin, rbac.RoleEditor)
	admins := rbac.HasRole(rbac.RoleAdmin)

	admin := api.Group("/admin", authed)
	admin.Get("/products", "admin.products.index", c.Inventory.Index)
	admin.Get("/products/alerts/low-stock", "admin.products.lowstock", c.Inventory.LowStock)
	admin.Patch("/products/bulk", "admin.products.bulk", c.Inventory.BulkUpdate, editors)
	admin.Get("/products/{id}", "admin.products.show", c.Inventory.Show)
	admin.Post("/products", "admin.products.create", c.Inventory.Create, editors)
	admin.Put("/products/{id}", "admin.products.update", c.Inventory.Update, editors)
	admin.Delete("/products/{id}", "admin.products.delete", c.Inventory.Delete, admins)
	admin.Patch("/products/{id}/stock", "admin.products.stock", c.Inventory.AdjustStock, editors)

	admin.Post("/categories", "admin.categories.create", c.Categories.Create, editors)
	admin.Put("/categories/{slug}", "admin.categories.update", c.Categories.Update, editors)
	admin.Delete("/categories/{id}", "admin.categories.delete", c.Categories.Delete, admins)

	admin.Get("/orders", "admin.orders.index", c.Orders.Index)
	admin.Patch("/orders/{orderNumber}/status", "admin.orders.status", c.Orders.UpdateStatus, editors)

	admin.Get("/stats", "admin.stats.dashboard", c.Stats.Dashboard)
	admin.Get("/stats/inventory", "admin.stats.inventory", c.Stats.Inventory)
	admin.Get("/stats/sales", "admin.stats.sales", c.Stats.Sales)

	admin.Post("/upload-url", "admin.uploads.presign", c.Uploads.Presign, editors)
	admin.Post("/upload", "admin.uploads.direct", c.Uploads.Direct, editors)
	admin.Delete("/upload/*", "admin.uploads.delete", c.Uploads.Delete, editors)

	// WebSocket stock alerts authenticate via query token, so the route
	// stays outside the auth group.
	r.Get("/ws/admin/alerts", "admin.alerts.stream", c.Alerts.Stream)
}
