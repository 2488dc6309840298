package http

import (
	"encoding/json"
	"net/http"

	"github.com/pinkcart/go-backend/internal/delivery/v1/http/dto"
	"github.com/pinkcart/go-backend/internal/usecase"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/pinkcart/go-backend/pkg/logger"
)

const (
	failSaveOrder   = "Failed to save order"
	failFetchOrders = "Failed to fetch orders"

	maxOrderBodySize = 1 << 20
)

type OrderHandler struct {
	orderUsecase usecase.OrderUC
	logger       logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase, logger: logger}
}

// createOrder
//
//	@Summary		Оформление заказа
//	@Description	Сохраняет заказ со статусом pending и ставит событие order.created в очередь
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		dto.CreateOrderRequest	true	"Заказ"
//	@Success		200		{object}	dto.Response
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		500		{object}	dto.ErrorResponse
//	@Router			/orders [post]
func (h *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxOrderBodySize)).Decode(&req); err != nil {
		h.logger.Warnf("%d decode order: %v", http.StatusBadRequest, err)
		WriteError(w, e.Wrap(err.Error(), e.ErrInvalidJSON), failSaveOrder)
		return
	}

	var items []dto.LineItem
	if req.Items != nil {
		items = *req.Items
	}

	order, err := h.orderUsecase.PlaceOrder(r.Context(), &usecase.PlaceOrderReq{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Items:         dto.ToLineItems(items),
		TotalPrice:    req.TotalPrice,
		TotalItems:    req.TotalItems,
	})
	if err != nil {
		h.logger.Warnf("place order: %v", err)
		WriteError(w, err, failSaveOrder)
		return
	}

	WriteSuccess(w, http.StatusOK, dto.Response{Success: true, Data: dto.FromOrder(order), Message: "Order saved successfully"})
}

// listOrders
//
//	@Summary	Список заказов
//	@Tags		orders
//	@Produce	json
//	@Success	200	{object}	dto.ListResponse
//	@Failure	500	{object}	dto.ErrorResponse
//	@Router		/orders [get]
func (h *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderUsecase.ListOrders(r.Context())
	if err != nil {
		h.logger.Errorf(err, "list orders")
		WriteError(w, err, failFetchOrders)
		return
	}

	WriteSuccess(w, http.StatusOK, dto.ListResponse{Success: true, Data: dto.FromOrders(orders), Count: len(orders)})
}
