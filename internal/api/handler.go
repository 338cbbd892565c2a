package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medihealth-backend/internal/payments"
	"medihealth-backend/internal/repository"
)

// Repositories bundles the collection wrappers a Handler serves.
type Repositories struct {
	Users          repository.UserRepository
	Medicines      repository.MedicineRepository
	Carts          repository.CartRepository
	Payments       repository.PaymentRepository
	Advertisements repository.AdvertisementRepository
}

// Handler holds every dependency the route handlers need. Constructed once
// at startup, stateless across requests.
type Handler struct {
	users     repository.UserRepository
	medicines repository.MedicineRepository
	carts     repository.CartRepository
	payments  repository.PaymentRepository
	ads       repository.AdvertisementRepository
	intents   payments.IntentCreator
	secret    []byte
	log       *zap.Logger
}

func New(repos Repositories, intents payments.IntentCreator, secret string, log *zap.Logger) *Handler {
	return &Handler{
		users:     repos.Users,
		medicines: repos.Medicines,
		carts:     repos.Carts,
		payments:  repos.Payments,
		ads:       repos.Advertisements,
		intents:   intents,
		secret:    []byte(secret),
		log:       log,
	}
}

// Register wires every route onto the engine. Gating per route: public
// catalog reads and cart operations, token-gated payment reads, admin-gated
// catalog writes, role management and analytics.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "mediHealth running")
	})

	// medicine
	r.GET("/medicine", h.listMedicines)
	r.GET("/medicine/:id", h.getMedicine)
	r.POST("/medicine", h.authRequired, h.adminOnly, h.createMedicine)
	r.PATCH("/medicine/:id", h.updateMedicine)
	r.DELETE("/medicine/:id", h.authRequired, h.adminOnly, h.deleteMedicine)

	// carts
	r.GET("/carts", h.listCart)
	r.POST("/carts", h.addToCart)
	r.PATCH("/carts/increase/:id", h.increaseCartItem)
	r.PATCH("/carts/decrease/:id", h.decreaseCartItem)
	r.DELETE("/carts/:id", h.removeCartItem)

	// jwt
	r.POST("/jwt", h.issueToken)

	// users
	r.POST("/users", h.registerUser)
	r.GET("/users", h.authRequired, h.adminOnly, h.listUsers)
	r.GET("/users/admin/:email", h.authRequired, h.adminFlag)
	r.GET("/users/seller/:email", h.authRequired, h.sellerFlag)
	r.PATCH("/users/admin/:id", h.authRequired, h.adminOnly, h.setRole("admin"))
	r.PATCH("/users/seller/:id", h.authRequired, h.adminOnly, h.setRole("seller"))
	r.PATCH("/users/user/:id", h.authRequired, h.adminOnly, h.setRole("user"))

	// payments
	r.POST("/create-payment-intent", h.createPaymentIntent)
	r.POST("/payments", h.recordPayment)
	r.GET("/payments", h.authRequired, h.listPayments)
	r.GET("/payments/:email", h.authRequired, h.listPaymentsForUser)
	r.PATCH("/payments/:id", h.authRequired, h.adminOnly, h.updatePaymentStatus)

	// advertisement
	r.GET("/advertisement", h.listAdvertisements)
	r.POST("/advertisement", h.createAdvertisement)
	r.PATCH("/advertisement/:id", h.setAdvertisementStatus)

	// analytics
	r.GET("/admin-stats", h.authRequired, h.adminOnly, h.adminStats)
	r.GET("/order-stats", h.authRequired, h.adminOnly, h.orderStats)
}

// serverError converts an unexpected failure into a generic 500, keeping the
// detail server-side.
func (h *Handler) serverError(c *gin.Context, err error) {
	h.log.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
