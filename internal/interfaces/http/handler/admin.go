package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/catalog"
	deliveryapp "github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/delivery"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/fulfillment"
	messagingapp "github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/messaging"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/monitoring"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/interfaces/http/middleware"
)

// SnapshotTaker computes the monitoring snapshot on demand
type SnapshotTaker interface {
	TakeSnapshot(ctx context.Context) (*monitoring.Snapshot, error)
}

// DeliveryService manages driver assignments and positions
type DeliveryService interface {
	AssignDriver(ctx context.Context, orderID string, req deliveryapp.AssignDriverRequest) (*deliveryapp.AssignmentResponse, error)
	ListAssignments(ctx context.Context) ([]deliveryapp.AssignmentResponse, error)
	DriverLocation(ctx context.Context, driverID string) (*deliveryapp.LocationResponse, error)
}

// ProductImageService issues and revokes product image uploads
type ProductImageService interface {
	RequestUpload(ctx context.Context, productID string, req catalogapp.UploadImageRequest) (*catalogapp.UploadImageResponse, error)
	DeleteImage(ctx context.Context, productID, path string) error
}

// OrderStatusService updates order fulfillment statuses
type OrderStatusService interface {
	UpdateStatus(ctx context.Context, orderID, adminID string, req fulfillment.UpdateStatusRequest) (*fulfillment.StatusResponse, error)
}

// ConversationService answers support conversations
type ConversationService interface {
	SendMessage(ctx context.Context, conversationID, adminID string, req messagingapp.SendMessageRequest) (*messagingapp.MessageResponse, error)
	MarkRead(ctx context.Context, conversationID string) (*messagingapp.ReadResponse, error)
	SetStatus(ctx context.Context, conversationID string, req messagingapp.StatusRequest) (*messagingapp.ConversationResponse, error)
}

// MonitoringHandler serves the admin dashboard metrics
type MonitoringHandler struct {
	BaseHandler
	snapshots SnapshotTaker
}

// NewMonitoringHandler creates a new MonitoringHandler
func NewMonitoringHandler(snapshots SnapshotTaker) *MonitoringHandler {
	return &MonitoringHandler{snapshots: snapshots}
}

// Snapshot godoc
//
//	@ID				getMonitoringSnapshot
//	@Summary		Store monitoring snapshot
//	@Description	Computes user, order, revenue and stock figures on demand
//	@Tags			monitoring
//	@Produce		json
//	@Success		200	{object}	dto.Response{data=monitoring.Snapshot}
//	@Failure		401	{object}	dto.Response
//	@Failure		403	{object}	dto.Response
//	@Failure		500	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/api/v1/admin/monitoring/snapshot [get]
func (h *MonitoringHandler) Snapshot(c *gin.Context) {
	snapshot, err := h.snapshots.TakeSnapshot(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snapshot)
}

// DeliveryHandler serves delivery assignment and tracking
type DeliveryHandler struct {
	BaseHandler
	deliveries DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler
func NewDeliveryHandler(deliveries DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveries: deliveries}
}

// AssignDriver godoc
//
//	@ID				assignDriver
//	@Summary		Assign or unassign a driver
//	@Description	An empty driver_id unassigns the order.
//	@Tags			deliveries
//	@Accept			json
//	@Produce		json
//	@Param			order_id	path		string							true	"Order ID"
//	@Param			request		body		deliveryapp.AssignDriverRequest	true	"Driver"
//	@Success		200			{object}	dto.Response{data=deliveryapp.AssignmentResponse}
//	@Failure		400			{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/api/v1/admin/deliveries/{order_id} [put]
func (h *DeliveryHandler) AssignDriver(c *gin.Context) {
	var req deliveryapp.AssignDriverRequest
	if !h.BindJSON(c, &req) {
		return
	}

	assignment, err := h.deliveries.AssignDriver(c.Request.Context(), c.Param("order_id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, assignment)
}

// ListAssignments godoc
//
//	@ID				listDeliveries
//	@Summary		List delivery assignments
//	@Tags			deliveries
//	@Produce		json
//	@Success		200	{object}	dto.Response{data=[]deliveryapp.AssignmentResponse}
//	@Security		BearerAuth
//	@Router			/api/v1/admin/deliveries [get]
func (h *DeliveryHandler) ListAssignments(c *gin.Context) {
	assignments, err := h.deliveries.ListAssignments(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, assignments, len(assignments))
}

// DriverLocation godoc
//
//	@ID				getDriverLocation
//	@Summary		Latest driver position
//	@Tags			deliveries
//	@Produce		json
//	@Param			driver_id	path		string	true	"Driver ID"
//	@Success		200			{object}	dto.Response{data=deliveryapp.LocationResponse}
//	@Failure		404			{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/api/v1/admin/drivers/{driver_id}/location [get]
func (h *DeliveryHandler) DriverLocation(c *gin.Context) {
	location, err := h.deliveries.DriverLocation(c.Request.Context(), c.Param("driver_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, location)
}

// ProductImageHandler serves product image uploads
type ProductImageHandler struct {
	BaseHandler
	images ProductImageService
}

// NewProductImageHandler creates a new ProductImageHandler
func NewProductImageHandler(images ProductImageService) *ProductImageHandler {
	return &ProductImageHandler{images: images}
}

// RequestUpload godoc
//
//	@ID				requestImageUpload
//	@Summary		Presign a product image upload
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			product_id	path		string							true	"Product ID"
//	@Param			request		body		catalogapp.UploadImageRequest	true	"Image metadata"
//	@Success		200			{object}	dto.Response{data=catalogapp.UploadImageResponse}
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		503			{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/api/v1/admin/products/{product_id}/images/upload-url [post]
func (h *ProductImageHandler) RequestUpload(c *gin.Context) {
	var req catalogapp.UploadImageRequest
	if !h.BindJSON(c, &req) {
		return
	}

	upload, err := h.images.RequestUpload(c.Request.Context(), c.Param("product_id"), req)
	if err != nil {
		h.handleImageError(c, err)
		return
	}
	h.Success(c, upload)
}

// DeleteImage godoc
//
//	@ID				deleteProductImage
//	@Summary		Delete a product image
//	@Tags			products
//	@Param			product_id	path	string	true	"Product ID"
//	@Param			path		query	string	true	"Object path returned by the upload"
//	@Success		204
//	@Failure		400	{object}	dto.Response
//	@Failure		503	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/api/v1/admin/products/{product_id}/images [delete]
func (h *ProductImageHandler) DeleteImage(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		h.BadRequest(c, "path is required")
		return
	}

	if err := h.images.DeleteImage(c.Request.Context(), c.Param("product_id"), path); err != nil {
		h.handleImageError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ProductImageHandler) handleImageError(c *gin.Context, err error) {
	if errors.Is(err, catalogapp.ErrStorageDisabled) {
		h.ServiceUnavailable(c, "Image storage is not configured")
		return
	}
	h.HandleError(c, err)
}

// OrderHandler serves order fulfillment updates
type OrderHandler struct {
	BaseHandler
	orders OrderStatusService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders OrderStatusService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// UpdateStatus godoc
//
//	@ID				updateOrderStatus
//	@Summary		Update order status
//	@Description	Moves an order through pending, processing, shipped, delivered or cancelled. The payment status is not changed.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order_id	path		string							true	"Order ID"
//	@Param			request		body		fulfillment.UpdateStatusRequest	true	"New status"
//	@Success		200			{object}	dto.Response{data=fulfillment.StatusResponse}
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		503			{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/api/v1/admin/orders/{order_id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req fulfillment.UpdateStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("order_id"), c.GetString(middleware.UserIDKey), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ConversationHandler serves the admin side of support conversations
type ConversationHandler struct {
	BaseHandler
	conversations ConversationService
}

// NewConversationHandler creates a new ConversationHandler
func NewConversationHandler(conversations ConversationService) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

// SendMessage godoc
//
//	@ID				sendConversationMessage
//	@Summary		Reply to a conversation
//	@Tags			conversations
//	@Accept			json
//	@Produce		json
//	@Param			conversation_id	path		string							true	"Conversation ID"
//	@Param			request			body		messagingapp.SendMessageRequest	true	"Message"
//	@Success		200				{object}	dto.Response{data=messagingapp.MessageResponse}
//	@Failure		400				{object}	dto.Response
//	@Failure		404				{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/api/v1/admin/conversations/{conversation_id}/messages [post]
func (h *ConversationHandler) SendMessage(c *gin.Context) {
	var req messagingapp.SendMessageRequest
	if !h.BindJSON(c, &req) {
		return
	}

	msg, err := h.conversations.SendMessage(c.Request.Context(), c.Param("conversation_id"), c.GetString(middleware.UserIDKey), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, msg)
}

// MarkRead godoc
//
//	@ID				markConversationRead
//	@Summary		Mark customer messages read
//	@Tags			conversations
//	@Produce		json
//	@Param			conversation_id	path		string	true	"Conversation ID"
//	@Success		200				{object}	dto.Response{data=messagingapp.ReadResponse}
//	@Failure		404				{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/api/v1/admin/conversations/{conversation_id}/read [put]
func (h *ConversationHandler) MarkRead(c *gin.Context) {
	resp, err := h.conversations.MarkRead(c.Request.Context(), c.Param("conversation_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetStatus godoc
//
//	@ID				setConversationStatus
//	@Summary		Change conversation status
//	@Tags			conversations
//	@Accept			json
//	@Produce		json
//	@Param			conversation_id	path		string						true	"Conversation ID"
//	@Param			request			body		messagingapp.StatusRequest	true	"active, pending or resolved"
//	@Success		200				{object}	dto.Response{data=messagingapp.ConversationResponse}
//	@Failure		400				{object}	dto.Response
//	@Failure		404				{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/api/v1/admin/conversations/{conversation_id}/status [put]
func (h *ConversationHandler) SetStatus(c *gin.Context) {
	var req messagingapp.StatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.conversations.SetStatus(c.Request.Context(), c.Param("conversation_id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
