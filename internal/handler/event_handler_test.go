package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"events-api/internal/handler"
	"events-api/internal/model"
	"events-api/internal/service/mocks"
	apperrors "events-api/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var InvalidJSON = `{"invalid": json}`

func setupEventTestRouter(mockService *mocks.MockEventService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.NewEventHandler(mockService).RegisterRoutes(router)
	return router
}

func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	var body []byte
	switch v := data.(type) {
	case string:
		body = []byte(v)
	default:
		body, _ = json.Marshal(v)
	}
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"event_name":     "Summer Concert",
		"starting_time":  "2024-01-01 10:00:00",
		"ending_time":    "2024-01-01 18:00:00",
		"image":          "/img/summer.png",
		"discount_rate":  10,
		"discount_rules": 2,
		"price":          1500,
	}
}

func storedEvent(id int) *model.Event {
	return &model.Event{
		ID:            id,
		EventName:     "Summer Concert",
		StartingTime:  time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		EndingTime:    time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC),
		Image:         "/img/summer.png",
		DiscountRate:  10,
		DiscountRules: 2,
		Price:         1500,
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestListEvents(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		mockService.EXPECT().List(mock.Anything).Return([]*model.Event{storedEvent(1), storedEvent(2)}, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		events, ok := decode(t, w)["event"].([]interface{})
		require.True(t, ok)
		assert.Len(t, events, 2)
	})

	t.Run("Success - empty list is an array", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		mockService.EXPECT().List(mock.Anything).Return(nil, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"event":[]}`, w.Body.String())
	})

	t.Run("Failed - InternalServerError", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		mockService.EXPECT().List(mock.Anything).Return(nil, errors.New("db error")).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	})
}

func TestGetEvent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		mockService.EXPECT().GetByID(mock.Anything, 1).Return(storedEvent(1), nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"event":{
			"idevents":1,
			"event_name":"Summer Concert",
			"starting_time":"2024-01-01 10:00:00",
			"ending_time":"2024-01-01 18:00:00",
			"image":"/img/summer.png",
			"discount_rate":10,
			"discount_rules":2,
			"price":1500
		}}`, w.Body.String())
	})

	t.Run("EventNotFound", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		mockService.EXPECT().GetByID(mock.Anything, 9999).Return(nil, apperrors.ErrEventNotFound).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/9999", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Event not found"}`, w.Body.String())
	})

	t.Run("InvalidID", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/abc", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestCreateEvent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		mockService.EXPECT().Create(mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
			return e.ID == 0 &&
				e.EventName == "Summer Concert" &&
				e.StartingTime.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)) &&
				e.EndingTime.Equal(time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)) &&
				e.Image == "/img/summer.png" &&
				e.DiscountRate == 10 && e.DiscountRules == 2 && e.Price == 1500
		})).Return(storedEvent(1), nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(http.MethodPost, "/events", validBody()))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"msg":"add success"}`, w.Body.String())
	})

	t.Run("Success - zero values count as present", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		body := validBody()
		body["discount_rate"] = 0
		body["discount_rules"] = 0
		body["price"] = 0

		mockService.EXPECT().Create(mock.Anything, mock.Anything).Return(storedEvent(1), nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(http.MethodPost, "/events", body))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	tests := []struct {
		name   string
		mutate func(body map[string]interface{})
	}{
		{name: "missing price", mutate: func(b map[string]interface{}) { delete(b, "price") }},
		{name: "missing event_name", mutate: func(b map[string]interface{}) { delete(b, "event_name") }},
		{name: "missing starting_time", mutate: func(b map[string]interface{}) { delete(b, "starting_time") }},
		{name: "null image", mutate: func(b map[string]interface{}) { b["image"] = nil }},
		{name: "event_name too long", mutate: func(b map[string]interface{}) { b["event_name"] = "abcdefghijklmnopqrstu" }},
		{name: "image too long", mutate: func(b map[string]interface{}) { b["image"] = string(bytes.Repeat([]byte("x"), 101)) }},
		{name: "price is a string", mutate: func(b map[string]interface{}) { b["price"] = "100" }},
		{name: "discount_rate is fractional", mutate: func(b map[string]interface{}) { b["discount_rate"] = 1.5 }},
		{name: "starting_time wrong layout", mutate: func(b map[string]interface{}) { b["starting_time"] = "2024-01-01T10:00:00Z" }},
		{name: "ending_time not a string", mutate: func(b map[string]interface{}) { b["ending_time"] = 1704103200 }},
		{name: "price out of range", mutate: func(b map[string]interface{}) { b["price"] = int64(1) << 40 }},
		{name: "discount_rate below range", mutate: func(b map[string]interface{}) { b["discount_rate"] = int64(-2147483649) }},
		{name: "discount_rules above range", mutate: func(b map[string]interface{}) { b["discount_rules"] = int64(2147483648) }},
	}
	for _, tt := range tests {
		t.Run("Failed - "+tt.name, func(t *testing.T) {
			mockService := mocks.NewMockEventService(t)
			router := setupEventTestRouter(mockService)

			body := validBody()
			tt.mutate(body)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, createJSONHTTPRequest(http.MethodPost, "/events", body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decode(t, w)
			assert.Equal(t, "Invalid request format", resp["error"])
			assert.NotEmpty(t, resp["details"])
			mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("Failed - missing field names the field", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		body := validBody()
		delete(body, "price")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(http.MethodPost, "/events", body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "price is required")
	})

	t.Run("Success - integer range bounds", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		body := validBody()
		body["price"] = 2147483647
		body["discount_rate"] = -2147483648

		mockService.EXPECT().Create(mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
			return e.Price == 2147483647 && e.DiscountRate == -2147483648
		})).Return(storedEvent(1), nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(http.MethodPost, "/events", body))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - out of range names the bound", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		body := validBody()
		body["price"] = int64(1) << 40

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(http.MethodPost, "/events", body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "price must be at most 2147483647")
	})

	t.Run("Failed - BindingError", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(http.MethodPost, "/events", InvalidJSON))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Failed - InternalServerError", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		mockService.EXPECT().Create(mock.Anything, mock.Anything).Return(nil, errors.New("db error")).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(http.MethodPost, "/events", validBody()))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestUpdateEvent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		updated := storedEvent(4)
		updated.EventName = "Renamed"
		mockService.EXPECT().Update(mock.Anything, 4, mock.MatchedBy(func(e *model.Event) bool {
			return e.EventName == "Renamed"
		})).Return(updated, nil).Once()

		body := validBody()
		body["event_name"] = "Renamed"

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(http.MethodPut, "/events/4", body))

		assert.Equal(t, http.StatusOK, w.Code)
		event, ok := decode(t, w)["event"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "Renamed", event["event_name"])
		assert.Equal(t, float64(4), event["idevents"])
	})

	t.Run("EventNotFound", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		mockService.EXPECT().Update(mock.Anything, 9999, mock.Anything).Return(nil, apperrors.ErrEventNotFound).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(http.MethodPut, "/events/9999", validBody()))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Failed - missing field", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		body := validBody()
		delete(body, "discount_rules")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(http.MethodPut, "/events/4", body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InvalidID", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(http.MethodPut, "/events/x1", validBody()))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteEvent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		mockService.EXPECT().Delete(mock.Anything, 123).Return(nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/events/123", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"msg":"delete success"}`, w.Body.String())
	})

	t.Run("EventNotFound", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		mockService.EXPECT().Delete(mock.Anything, 99999).Return(apperrors.ErrEventNotFound).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/events/99999", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/events/invalid", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestCountEvent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		mockService.EXPECT().CountByID(mock.Anything, 7).Return(1, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/count/7", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"msg":1}`, w.Body.String())
	})

	t.Run("Missing", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		mockService.EXPECT().CountByID(mock.Anything, 8).Return(0, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/count/8", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"msg":0}`, w.Body.String())
	})

	t.Run("InvalidID", func(t *testing.T) {
		mockService := mocks.NewMockEventService(t)
		router := setupEventTestRouter(mockService)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/count/abc", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "CountByID", mock.Anything, mock.Anything)
	})
}
