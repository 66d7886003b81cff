package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/catalog"
	deliveryapp "github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/delivery"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/fulfillment"
	messagingapp "github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/messaging"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/catalog"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/messaging"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/monitoring"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/order"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/interfaces/http/dto"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/interfaces/http/middleware"
)

func serveJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMonitoringHandler_Snapshot(t *testing.T) {
	snapshots := new(mockSnapshotTaker)
	h := NewMonitoringHandler(snapshots)
	r := gin.New()
	r.GET("/snapshot", h.Snapshot)

	t.Run("success", func(t *testing.T) {
		snapshots.On("TakeSnapshot", mock.Anything).Return(&monitoring.Snapshot{
			TakenAt:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			TotalUsers:   10,
			RevenueToday: decimal.RequireFromString("1500"),
		}, nil).Once()

		w := serveJSON(r, http.MethodGet, "/snapshot", "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeEnvelope(t, w)
		assert.True(t, resp.Success)
		data := resp.Data.(map[string]any)
		assert.Equal(t, float64(10), data["total_users"])
		assert.Equal(t, "1500", data["revenue_today"])
	})

	t.Run("repository failure", func(t *testing.T) {
		snapshots.On("TakeSnapshot", mock.Anything).Return(nil, errors.New("db down")).Once()

		w := serveJSON(r, http.MethodGet, "/snapshot", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, dto.ErrCodeInternal, decodeEnvelope(t, w).Error.Code)
	})
}

func TestDeliveryHandler(t *testing.T) {
	deliveries := new(mockDeliveryService)
	h := NewDeliveryHandler(deliveries)
	r := gin.New()
	r.PUT("/deliveries/:order_id", h.AssignDriver)
	r.GET("/deliveries", h.ListAssignments)
	r.GET("/drivers/:driver_id/location", h.DriverLocation)

	driver := "d1"
	assignedAt := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("assign driver", func(t *testing.T) {
		deliveries.On("AssignDriver", mock.Anything, "o1", deliveryapp.AssignDriverRequest{DriverID: "d1"}).
			Return(&deliveryapp.AssignmentResponse{OrderID: "o1", DriverID: &driver, Status: "assigned", AssignedAt: assignedAt}, nil).Once()

		w := serveJSON(r, http.MethodPut, "/deliveries/o1", `{"driver_id":"d1"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeEnvelope(t, w).Data.(map[string]any)
		assert.Equal(t, "assigned", data["status"])
		assert.Equal(t, "d1", data["driver_id"])
	})

	t.Run("malformed body", func(t *testing.T) {
		w := serveJSON(r, http.MethodPut, "/deliveries/o1", `{"driver_id":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidJSON, decodeEnvelope(t, w).Error.Code)
	})

	t.Run("list", func(t *testing.T) {
		deliveries.On("ListAssignments", mock.Anything).Return([]deliveryapp.AssignmentResponse{
			{OrderID: "o2", Status: "unassigned", AssignedAt: assignedAt},
			{OrderID: "o1", DriverID: &driver, Status: "assigned", AssignedAt: assignedAt},
		}, nil).Once()

		w := serveJSON(r, http.MethodGet, "/deliveries", "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeEnvelope(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, 2, resp.Meta.Total)
		assert.Len(t, resp.Data, 2)
	})

	t.Run("driver without location", func(t *testing.T) {
		deliveries.On("DriverLocation", mock.Anything, "ghost").Return(nil, shared.ErrNotFound).Once()

		w := serveJSON(r, http.MethodGet, "/drivers/ghost/location", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, decodeEnvelope(t, w).Error.Code)
	})

	deliveries.AssertExpectations(t)
}

func TestProductImageHandler(t *testing.T) {
	middleware.SetupValidator()

	images := new(mockImageService)
	h := NewProductImageHandler(images)
	r := gin.New()
	r.POST("/products/:product_id/images/upload-url", h.RequestUpload)
	r.DELETE("/products/:product_id/images", h.DeleteImage)

	t.Run("issues upload", func(t *testing.T) {
		req := catalogapp.UploadImageRequest{FileName: "soap.png", ContentType: "image/png", Size: 2048}
		images.On("RequestUpload", mock.Anything, "p1", req).Return(&catalogapp.UploadImageResponse{
			UploadURL: "https://bucket.s3/put",
			Path:      "products/p1/1714550400000_ab12.png",
		}, nil).Once()

		w := serveJSON(r, http.MethodPost, "/products/p1/images/upload-url",
			`{"file_name":"soap.png","content_type":"image/png","size":2048}`)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeEnvelope(t, w).Data.(map[string]any)
		assert.Equal(t, "products/p1/1714550400000_ab12.png", data["path"])
	})

	t.Run("missing fields", func(t *testing.T) {
		w := serveJSON(r, http.MethodPost, "/products/p1/images/upload-url", `{"file_name":"soap.png"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeEnvelope(t, w)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Len(t, resp.Error.Details, 2)
	})

	t.Run("rejected type", func(t *testing.T) {
		images.On("RequestUpload", mock.Anything, "p1", mock.Anything).Return(nil, catalog.ErrUnsupportedImageType).Once()

		w := serveJSON(r, http.MethodPost, "/products/p1/images/upload-url",
			`{"file_name":"soap.bmp","content_type":"image/bmp","size":10}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeUnsupportedImageType, decodeEnvelope(t, w).Error.Code)
	})

	t.Run("storage disabled", func(t *testing.T) {
		images.On("DeleteImage", mock.Anything, "p1", "products/p1/a.png").Return(catalogapp.ErrStorageDisabled).Once()

		w := serveJSON(r, http.MethodDelete, "/products/p1/images?path=products/p1/a.png", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, dto.ErrCodeServiceUnavailable, decodeEnvelope(t, w).Error.Code)
	})

	t.Run("delete", func(t *testing.T) {
		images.On("DeleteImage", mock.Anything, "p1", "products/p1/b.png").Return(nil).Once()

		w := serveJSON(r, http.MethodDelete, "/products/p1/images?path=products/p1/b.png", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("delete without path", func(t *testing.T) {
		w := serveJSON(r, http.MethodDelete, "/products/p1/images", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	images.AssertExpectations(t)
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	middleware.SetupValidator()

	orders := new(mockOrderStatusService)
	h := NewOrderHandler(orders)
	r := gin.New()
	r.PUT("/orders/:order_id/status", withCaller("admin-1", "ops@gba.td"), h.UpdateStatus)

	updatedAt := time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)

	t.Run("updates status", func(t *testing.T) {
		orders.On("UpdateStatus", mock.Anything, "o1", "admin-1", fulfillment.UpdateStatusRequest{Status: "shipped"}).
			Return(&fulfillment.StatusResponse{OrderID: "o1", Status: "shipped", UpdatedAt: updatedAt}, nil).Once()

		w := serveJSON(r, http.MethodPut, "/orders/o1/status", `{"status":"shipped"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeEnvelope(t, w).Data.(map[string]any)
		assert.Equal(t, "o1", data["order_id"])
		assert.Equal(t, "shipped", data["status"])
		assert.Equal(t, "2024-05-02T08:30:00Z", data["updated_at"])
	})

	t.Run("missing status", func(t *testing.T) {
		w := serveJSON(r, http.MethodPut, "/orders/o1/status", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeEnvelope(t, w).Error.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		orders.On("UpdateStatus", mock.Anything, "o1", "admin-1", fulfillment.UpdateStatusRequest{Status: "lost"}).
			Return(nil, order.ErrInvalidStatus).Once()

		w := serveJSON(r, http.MethodPut, "/orders/o1/status", `{"status":"lost"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeEnvelope(t, w).Error.Code)
	})

	t.Run("unknown order", func(t *testing.T) {
		orders.On("UpdateStatus", mock.Anything, "ghost", "admin-1", mock.Anything).
			Return(nil, shared.ErrNotFound.WithMessage("Order not found")).Once()

		w := serveJSON(r, http.MethodPut, "/orders/ghost/status", `{"status":"delivered"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeEnvelope(t, w)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
		assert.Equal(t, "Order not found", resp.Error.Message)
	})

	orders.AssertExpectations(t)
}

func TestConversationHandler(t *testing.T) {
	middleware.SetupValidator()

	conversations := new(mockConversationService)
	h := NewConversationHandler(conversations)
	r := gin.New()
	admin := r.Group("", withCaller("admin-1", "ops@gba.td"))
	admin.POST("/conversations/:conversation_id/messages", h.SendMessage)
	admin.PUT("/conversations/:conversation_id/read", h.MarkRead)
	admin.PUT("/conversations/:conversation_id/status", h.SetStatus)

	sentAt := time.Date(2024, 5, 3, 14, 0, 0, 0, time.UTC)

	t.Run("sends reply", func(t *testing.T) {
		conversations.On("SendMessage", mock.Anything, "c1", "admin-1", messagingapp.SendMessageRequest{Content: "Votre colis arrive demain"}).
			Return(&messagingapp.MessageResponse{
				ID:             "m1",
				ConversationID: "c1",
				SenderID:       "admin-1",
				SenderType:     "admin",
				Content:        "Votre colis arrive demain",
				MessageType:    "text",
				CreatedAt:      sentAt,
			}, nil).Once()

		w := serveJSON(r, http.MethodPost, "/conversations/c1/messages", `{"content":"Votre colis arrive demain"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeEnvelope(t, w).Data.(map[string]any)
		assert.Equal(t, "m1", data["id"])
		assert.Equal(t, "admin", data["sender_type"])
		assert.Equal(t, false, data["is_read"])
	})

	t.Run("empty body", func(t *testing.T) {
		w := serveJSON(r, http.MethodPost, "/conversations/c1/messages", `{"content":""}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeEnvelope(t, w).Error.Code)
	})

	t.Run("reply too long", func(t *testing.T) {
		conversations.On("SendMessage", mock.Anything, "c1", "admin-1", mock.Anything).
			Return(nil, messaging.ErrContentTooLong).Once()

		w := serveJSON(r, http.MethodPost, "/conversations/c1/messages", `{"content":"x"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeEnvelope(t, w).Error.Code)
	})

	t.Run("unknown conversation", func(t *testing.T) {
		conversations.On("SendMessage", mock.Anything, "ghost", "admin-1", mock.Anything).
			Return(nil, shared.ErrNotFound).Once()

		w := serveJSON(r, http.MethodPost, "/conversations/ghost/messages", `{"content":"hello"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("marks read", func(t *testing.T) {
		conversations.On("MarkRead", mock.Anything, "c1").
			Return(&messagingapp.ReadResponse{ConversationID: "c1", Updated: 3}, nil).Once()

		w := serveJSON(r, http.MethodPut, "/conversations/c1/read", "")

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeEnvelope(t, w).Data.(map[string]any)
		assert.Equal(t, float64(3), data["updated"])
	})

	t.Run("sets status", func(t *testing.T) {
		conversations.On("SetStatus", mock.Anything, "c1", messagingapp.StatusRequest{Status: "resolved"}).
			Return(&messagingapp.ConversationResponse{ID: "c1", Status: "resolved"}, nil).Once()

		w := serveJSON(r, http.MethodPut, "/conversations/c1/status", `{"status":"resolved"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeEnvelope(t, w).Data.(map[string]any)
		assert.Equal(t, "resolved", data["status"])
	})

	t.Run("invalid status", func(t *testing.T) {
		conversations.On("SetStatus", mock.Anything, "c1", messagingapp.StatusRequest{Status: "archived"}).
			Return(nil, messaging.ErrInvalidStatus).Once()

		w := serveJSON(r, http.MethodPut, "/conversations/c1/status", `{"status":"archived"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeEnvelope(t, w).Error.Code)
	})

	conversations.AssertExpectations(t)
}
