package api

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/giovaniif/device-rental/domain/item"
	"github.com/giovaniif/device-rental/domain/reservation"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type ReserveRequest struct {
	ItemId    string `json:"itemId" binding:"required"`
	StartDate string `json:"startDate" binding:"required,dateonly"`
	EndDate   string `json:"endDate" binding:"required,dateonly"`
	Quantity  int32  `json:"quantity"`
}

type ItemRequest struct {
	Id          string          `json:"id"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	PricePerDay decimal.Decimal `json:"pricePerDay"`
	Stock       int32           `json:"stock" binding:"gte=1"`
}

type AvailabilityQuery struct {
	Start    string `form:"start" binding:"required,dateonly"`
	End      string `form:"end" binding:"required,dateonly"`
	Quantity int32  `form:"quantity"`
}

type AvailabilityResponse struct {
	ItemId    string `json:"itemId"`
	Available bool   `json:"available"`
	Remaining int32  `json:"remaining"`
	Stock     int32  `json:"stock"`
	Cost      string `json:"cost"`
}

type ItemResponse struct {
	Id          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	PricePerDay decimal.Decimal `json:"pricePerDay"`
	Stock       int32           `json:"stock"`
}

type ReservationResponse struct {
	Id         string          `json:"id"`
	CustomerId string          `json:"customerId"`
	ItemId     string          `json:"itemId"`
	StartDate  string          `json:"startDate"`
	EndDate    string          `json:"endDate"`
	Quantity   int32           `json:"quantity"`
	Status     string          `json:"status"`
	TotalCost  decimal.Decimal `json:"totalCost"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func toItemResponse(it item.Item) ItemResponse {
	return ItemResponse{
		Id:          it.Id,
		Name:        it.Name,
		Description: it.Description,
		PricePerDay: it.PricePerDay,
		Stock:       it.Stock,
	}
}

func toItemResponses(items []item.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out
}

func toReservationResponse(r reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		Id:         r.Id,
		CustomerId: r.CustomerId,
		ItemId:     r.ItemId,
		StartDate:  r.StartDate.Format(time.DateOnly),
		EndDate:    r.EndDate.Format(time.DateOnly),
		Quantity:   r.Quantity,
		Status:     string(r.Status()),
		TotalCost:  r.TotalCost,
		CreatedAt:  r.CreatedAt,
	}
}

func toReservationResponses(rs []reservation.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, toReservationResponse(r))
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

func validateDateOnly(fl validator.FieldLevel) bool {
	_, err := parseDate(fl.Field().String())
	return err == nil
}
