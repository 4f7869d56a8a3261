package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ordersdomain "github.com/pustakahq/bookstore-api/internal/domains/orders/domain"
	ordersports "github.com/pustakahq/bookstore-api/internal/domains/orders/ports"
)

type orderHandler struct {
	orders    ordersports.Service
	workflows ordersports.WorkflowOrchestrator
}

type orderItemRequest struct {
	BookID   string `json:"book_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

type placeOrderRequest struct {
	Items []orderItemRequest `json:"items" binding:"required"`
}

type receiptResponse struct {
	OrderID       string  `json:"order_id"`
	TotalQuantity int     `json:"total_quantity"`
	TotalPrice    float64 `json:"total_price"`
}

type orderItemResponse struct {
	ID       string `json:"id"`
	BookID   string `json:"book_id"`
	Quantity int    `json:"quantity"`
}

type orderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user_id"`
	Items     []orderItemResponse `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
}

func toOrderResponse(order *ordersdomain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{ID: item.ID, BookID: item.BookID, Quantity: item.Quantity})
	}
	return orderResponse{ID: order.ID, UserID: order.UserID, Items: items, CreatedAt: order.CreatedAt}
}

func (h *orderHandler) place(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	input := ordersports.PlaceOrderInput{UserID: authenticatedUserID(c)}
	for _, item := range req.Items {
		input.Items = append(input.Items, ordersports.ItemInput{BookID: item.BookID, Quantity: item.Quantity})
	}
	receipt, err := h.workflows.PlaceOrder(c.Request.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "order created", receiptResponse{
		OrderID:       receipt.OrderID,
		TotalQuantity: receipt.TotalQuantity,
		TotalPrice:    receipt.TotalPrice,
	})
}

func (h *orderHandler) list(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context(), authenticatedUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}
	respond(c, http.StatusOK, "orders retrieved", out)
}

func (h *orderHandler) get(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Request.Context(), authenticatedUserID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "order retrieved", toOrderResponse(order))
}

type statisticsResponse struct {
	TotalTransactions            int     `json:"total_transactions"`
	AverageNominalPerTransaction float64 `json:"average_nominal_per_transaction"`
	MostSoldGenre                *string `json:"most_sold_genre"`
	LeastSoldGenre               *string `json:"least_sold_genre"`
}

func (h *orderHandler) statistics(c *gin.Context) {
	stats, err := h.orders.ComputeStatistics(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "statistics computed", statisticsResponse{
		TotalTransactions:            stats.TotalTransactions,
		AverageNominalPerTransaction: stats.AverageNominalPerTransaction,
		MostSoldGenre:                stats.MostSoldGenre,
		LeastSoldGenre:               stats.LeastSoldGenre,
	})
}
