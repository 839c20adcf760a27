package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrada-events/checkin-api/internal/domain"
	"github.com/entrada-events/checkin-api/internal/service"
)

func putJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodPut, path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	return doRequest(router, req)
}

func doRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	return resp
}

type fakeEventService struct {
	updateFn func(update domain.EventUpdate) (domain.Event, error)
}

func (f *fakeEventService) CreateEvent(_ context.Context, event domain.Event) (domain.Event, error) {
	return event, nil
}

func (f *fakeEventService) GetEvent(_ context.Context, id uint) (domain.Event, error) {
	return domain.Event{ID: id}, nil
}

func (f *fakeEventService) ListEvents(context.Context) ([]domain.Event, error) {
	return nil, nil
}

func (f *fakeEventService) GetActiveEvent(context.Context) (domain.Event, error) {
	return domain.Event{}, service.ErrNoActiveEvent
}

func (f *fakeEventService) UpdateEvent(_ context.Context, update domain.EventUpdate) (domain.Event, error) {
	return f.updateFn(update)
}

func (f *fakeEventService) DeleteEvent(context.Context, uint) error {
	return nil
}

func newEventRouter(svc EventService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewEventHandler(svc)

	router := gin.New()
	router.PUT("/api/v1/events/:eventID", h.HandleUpdateEvent)
	router.GET("/api/v1/events-active", h.HandleGetActiveEvent)

	return router
}

func TestHandleUpdateEvent(t *testing.T) {
	t.Run("omitted is_active stays unset through the handler", func(t *testing.T) {
		svc := &fakeEventService{
			updateFn: func(update domain.EventUpdate) (domain.Event, error) {
				assert.Equal(t, uint(3), update.ID)
				assert.Equal(t, "Open Day, renamed", update.Name)
				assert.Nil(t, update.IsActive)
				assert.Nil(t, update.StartDate)

				return domain.Event{ID: update.ID, Name: update.Name, IsActive: true}, nil
			},
		}
		router := newEventRouter(svc)

		resp := putJSON(t, router, "/api/v1/events/3", `{"name":"Open Day, renamed"}`)

		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("provided is_active false is carried as a value", func(t *testing.T) {
		svc := &fakeEventService{
			updateFn: func(update domain.EventUpdate) (domain.Event, error) {
				if assert.NotNil(t, update.IsActive) {
					assert.False(t, *update.IsActive)
				}

				return domain.Event{ID: update.ID}, nil
			},
		}
		router := newEventRouter(svc)

		resp := putJSON(t, router, "/api/v1/events/3", `{"is_active":false}`)

		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("422 when the merged end date predates the start", func(t *testing.T) {
		svc := &fakeEventService{
			updateFn: func(domain.EventUpdate) (domain.Event, error) {
				return domain.Event{}, service.ErrEndDateBeforeStart
			},
		}
		router := newEventRouter(svc)

		resp := putJSON(t, router, "/api/v1/events/3", `{"end_date":"2026-09-11T09:00:00Z"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("404 on an unknown event", func(t *testing.T) {
		svc := &fakeEventService{
			updateFn: func(domain.EventUpdate) (domain.Event, error) {
				return domain.Event{}, service.ErrEventNotFound
			},
		}
		router := newEventRouter(svc)

		resp := putJSON(t, router, "/api/v1/events/99", `{"name":"Ghost"}`)

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestHandleGetActiveEventNone(t *testing.T) {
	router := newEventRouter(&fakeEventService{})

	req, err := http.NewRequest(http.MethodGet, "/api/v1/events-active", nil)
	assert.NoError(t, err)

	resp := doRequest(router, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `{"message":"No active event found"}`, resp.Body.String())
}
