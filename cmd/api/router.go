package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/giovaniif/device-rental/domain/reservation"
	"github.com/giovaniif/device-rental/infra/metrics"
	"github.com/giovaniif/device-rental/infra/requestid"
	"github.com/giovaniif/device-rental/infra/tracing"
	"github.com/giovaniif/device-rental/use_cases/approve"
	"github.com/giovaniif/device-rental/use_cases/availability"
	"github.com/giovaniif/device-rental/use_cases/cancel"
	"github.com/giovaniif/device-rental/use_cases/catalog"
	"github.com/giovaniif/device-rental/use_cases/complete"
	"github.com/giovaniif/device-rental/use_cases/login"
	"github.com/giovaniif/device-rental/use_cases/reject"
	"github.com/giovaniif/device-rental/use_cases/reserve"
)

type Dependencies struct {
	Logger       *slog.Logger
	Tokens       tokenParser
	Reservations reservation.Repository
	Catalog      *catalog.Catalog
	Login        *login.Login
	Reserve      *reserve.Reserve
	Approve      *approve.Approve
	Reject       *reject.Reject
	Cancel       *cancel.Cancel
	Complete     *complete.Complete
	Availability *availability.Availability
	// HealthChecks maps a dependency name to a probe; nil means nothing to check.
	HealthChecks map[string]func(ctx context.Context) error
}

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		panic("gin binding engine is not go-playground/validator")
	}
	if err := v.RegisterValidation("dateonly", validateDateOnly); err != nil {
		panic(err)
	}
}

func NewRouter(deps Dependencies) *gin.Engine {
	h := &handlers{deps: deps}
	r := gin.New()
	r.Use(gin.Recovery(), requestid.Middleware, tracing.Middleware(), metrics.Middleware, requestLogger(deps.Logger))

	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/login", h.login)

	r.GET("/items", h.searchItems)
	r.GET("/items/:id", h.getItem)

	authed := r.Group("/", authenticate(deps.Tokens))
	authed.GET("/items/:id/availability", h.availability)
	authed.POST("/reservations", h.reserve)
	authed.GET("/reservations/mine", h.myReservations)
	authed.POST("/reservations/:id/cancel", h.cancel)

	staff := authed.Group("/", requireStaff)
	staff.POST("/items", h.addItem)
	staff.PUT("/items/:id", h.updateItem)
	staff.DELETE("/items/:id", h.removeItem)
	staff.GET("/items/:id/reservations", h.itemReservations)
	staff.GET("/reservations/:id", h.getReservation)
	staff.POST("/reservations/:id/approve", h.approve)
	staff.POST("/reservations/:id/reject", h.reject)
	staff.POST("/reservations/:id/complete", h.complete)

	return r
}

type handlers struct {
	deps Dependencies
}

func (h *handlers) health(c *gin.Context) {
	status := "healthy"
	checks := gin.H{}
	for name, probe := range h.deps.HealthChecks {
		if err := probe(c.Request.Context()); err != nil {
			status = "degraded"
			checks[name] = "down"
		} else {
			checks[name] = "up"
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "checks": checks})
}

func (h *handlers) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.deps.Login.Login(login.Input{Username: req.Username, Password: req.Password})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, LoginResponse{Token: out.Token, Username: out.Identity.Username, Role: string(out.Identity.Role)})
}

func (h *handlers) searchItems(c *gin.Context) {
	c.JSON(http.StatusOK, toItemResponses(h.deps.Catalog.Search(c.Query("q"))))
}

func (h *handlers) getItem(c *gin.Context) {
	it, err := h.deps.Catalog.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toItemResponse(*it))
}

func (h *handlers) addItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	it, err := h.deps.Catalog.Add(itemInput(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toItemResponse(*it))
}

func (h *handlers) updateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	req.Id = c.Param("id")
	it, err := h.deps.Catalog.Update(itemInput(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toItemResponse(*it))
}

func (h *handlers) removeItem(c *gin.Context) {
	if err := h.deps.Catalog.Remove(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) availability(c *gin.Context) {
	var q AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	if q.Quantity == 0 {
		q.Quantity = 1
	}
	start, _ := parseDate(q.Start)
	end, _ := parseDate(q.End)
	out, err := h.deps.Availability.Check(availability.Input{ItemId: c.Param("id"), StartDate: start, EndDate: end, Quantity: q.Quantity})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, AvailabilityResponse{
		ItemId:    c.Param("id"),
		Available: out.Available,
		Remaining: out.Remaining,
		Stock:     out.Stock,
		Cost:      out.Cost,
	})
}

func (h *handlers) reserve(c *gin.Context) {
	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	start, _ := parseDate(req.StartDate)
	end, _ := parseDate(req.EndDate)
	out, err := h.deps.Reserve.Reserve(c.Request.Context(), reserve.Input{
		CustomerId:     currentIdentity(c).Username,
		ItemId:         req.ItemId,
		StartDate:      start,
		EndDate:        end,
		Quantity:       req.Quantity,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	status := http.StatusCreated
	if out.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, toReservationResponse(out.Reservation))
}

func (h *handlers) myReservations(c *gin.Context) {
	c.JSON(http.StatusOK, toReservationResponses(h.deps.Reservations.GetByCustomer(currentIdentity(c).Username)))
}

func (h *handlers) itemReservations(c *gin.Context) {
	if _, err := h.deps.Catalog.Get(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponses(h.deps.Reservations.GetByItem(c.Param("id"))))
}

func (h *handlers) getReservation(c *gin.Context) {
	res, err := h.deps.Reservations.GetReservation(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(*res))
}

func (h *handlers) approve(c *gin.Context) {
	out, err := h.deps.Approve.Approve(c.Request.Context(), approve.Input{ReservationId: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(out.Reservation))
}

func (h *handlers) reject(c *gin.Context) {
	out, err := h.deps.Reject.Reject(c.Request.Context(), reject.Input{ReservationId: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(out.Reservation))
}

func (h *handlers) cancel(c *gin.Context) {
	out, err := h.deps.Cancel.Cancel(c.Request.Context(), cancel.Input{ReservationId: c.Param("id"), Actor: currentIdentity(c)})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(out.Reservation))
}

func (h *handlers) complete(c *gin.Context) {
	out, err := h.deps.Complete.Complete(c.Request.Context(), complete.Input{ReservationId: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(out.Reservation))
}

func itemInput(req ItemRequest) catalog.Input {
	return catalog.Input{
		Id:          req.Id,
		Name:        req.Name,
		Description: req.Description,
		PricePerDay: req.PricePerDay,
		Stock:       req.Stock,
	}
}
