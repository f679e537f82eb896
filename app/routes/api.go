// Package routes wires the HTTP surface.
//
// Route map:
//
//	POST   /auth/signup                     public
//	POST   /auth/login                      public
//	POST   /auth/google-login               public
//	POST   /auth/forgot-password            public
//	POST   /auth/reset-password             public
//	GET    /auth/all-users                  admin
//	POST   /booking                         auth
//	GET    /booking/my                      auth
//	GET    /booking                         public (email+phone lookup)
//	GET    /booking/all                     admin (alias surface)
//	GET    /admin/orders                    admin
//	POST   /api/reviews                     auth
//	PUT    /api/reviews/{id}                auth (owner)
//	DELETE /api/reviews/{id}                auth (owner or admin)
//	GET    /api/reviews/reviews/{vendorId}  public
//	GET    /api/reviews/stats/{vendorId}    public
//	GET    /products                        public
//	GET    /products/{id}                   public
//	POST   /admin/products                  admin (multipart)
//	GET    /admin/products                  admin
//	GET    /admin/products/{id}             admin
//	PUT    /admin/products/{id}             admin (multipart)
//	DELETE /admin/products/{id}             admin
package routes

import (
	"github.com/inbasree/weddingvista/app/controllers"
	"github.com/inbasree/weddingvista/app/models"
	"github.com/inbasree/weddingvista/pkg/middleware"
	"github.com/inbasree/weddingvista/pkg/rbac"
	"github.com/inbasree/weddingvista/pkg/router"
)

// Controllers bundles the wired controller set.
type Controllers struct {
	Auth    *controllers.AuthController
	Booking *controllers.BookingController
	Review  *controllers.ReviewController
	Product *controllers.ProductController
}

// RegisterAPI mounts the whole route surface. users powers the
// lastActive refresh the auth middleware performs.
func RegisterAPI(r *router.Router, c Controllers, users middleware.Toucher) {
	requireAuth := middleware.Auth(users)
	requireAdmin := rbac.HasRole(models.RoleAdmin)

	auth := r.Group("/auth")
	auth.Post("/signup", "auth.signup", c.Auth.Signup)
	auth.Post("/login", "auth.login", c.Auth.Login)
	auth.Post("/google-login", "auth.google", c.Auth.GoogleLogin)
	auth.Post("/forgot-password", "auth.forgot", c.Auth.ForgotPassword)
	auth.Post("/reset-password", "auth.reset", c.Auth.ResetPassword)
	auth.Get("/all-users", "auth.users", c.Auth.AllUsers, requireAuth, requireAdmin)

	booking := r.Group("/booking")
	booking.Get("", "booking.lookup", c.Booking.ByContact)
	booking.Post("", "booking.create", c.Booking.Create, requireAuth)
	booking.Get("/my", "booking.mine", c.Booking.Mine, requireAuth)
	booking.Get("/all", "booking.all", c.Booking.All, requireAuth, requireAdmin)

	reviews := r.Group("/api/reviews")
	reviews.Post("", "reviews.submit", c.Review.Submit, requireAuth)
	reviews.Put("/{id}", "reviews.update", c.Review.Update, requireAuth)
	reviews.Delete("/{id}", "reviews.delete", c.Review.Delete, requireAuth)
	reviews.Get("/stats/{vendorId}", "reviews.stats", c.Review.Stats)
	reviews.Get("/reviews/{vendorId}", "reviews.list", c.Review.List)

	r.Get("/products", "products.list", c.Product.List)
	r.Get("/products/{id}", "products.get", c.Product.Get)

	r.Get("/admin/orders", "admin.orders", c.Booking.Orders, requireAuth, requireAdmin)

	admin := r.Group("/admin/products", requireAuth, requireAdmin)
	admin.Get("", "admin.products.list", c.Product.List)
	admin.Get("/{id}", "admin.products.get", c.Product.Get)
	admin.Post("", "admin.products.create", c.Product.Create)
	admin.Put("/{id}", "admin.products.update", c.Product.Update)
	admin.Delete("/{id}", "admin.products.delete", c.Product.Delete)
}
