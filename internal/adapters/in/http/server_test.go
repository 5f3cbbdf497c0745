package http_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	inhttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/memstore"
	"dispatch/internal/core/application/dispatch"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/admin"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// silentNotifier swallows deliveries; webhook tests only care about the
// HTTP contract, not the outbound traffic.
type silentNotifier struct{}

func (silentNotifier) SendText(context.Context, string, string, *ports.ButtonLayout) (string, error) {
	return "m-1", nil
}

func (silentNotifier) SendMedia(context.Context, string, string, string, *ports.ButtonLayout) (string, error) {
	return "m-1", nil
}

func (silentNotifier) EditMessage(context.Context, string, string, string, *ports.ButtonLayout) error {
	return nil
}

func (silentNotifier) AnswerInteraction(context.Context, string, string) error {
	return nil
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	orders := memstore.NewOrderRepository()
	roster, err := admin.NewRoster([]kernel.ActorID{10})
	require.NoError(t, err)

	router, err := dispatch.NewRouter(dispatch.RouterParams{
		Orders:           orders,
		Couriers:         memstore.NewCourierRepository(),
		Requesters:       memstore.NewRequesterRepository(),
		Artifacts:        memstore.NewArtifactRepository(),
		Sessions:         memstore.NewSessionRepository(),
		Roster:           roster,
		Notifier:         silentNotifier{},
		Logger:           slog.New(slog.DiscardHandler),
		ReminderInterval: time.Hour,
	})
	require.NoError(t, err)
	t.Cleanup(router.Close)

	server := inhttp.NewServer(
		router,
		commands.NewCreateDraftOrderCommandHandler(orders),
		queries.NewGetOrdersQueryHandler(orders),
		queries.NewGetAllCouriersQueryHandler(memstore.NewCourierRepository()),
	)

	e := echo.New()
	server.RegisterRoutes(e)
	return e
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestWebhook_AcceptsKnownUpdateTypes(t *testing.T) {
	e := newTestServer(t)

	for _, body := range []string{
		`{"type":"text","actor":{"id":"5000","display_name":"Aigerim"},"text":"hello"}`,
		`{"type":"location","actor":{"id":"5000"},"lat":43.25,"lng":76.95}`,
		`{"type":"media","actor":{"id":"10"},"media_ref":"file-1"}`,
		`{"type":"interaction","actor":{"id":"10"},"token":"none","interaction_id":"cb-1"}`,
	} {
		rec := doJSON(e, http.MethodPost, "/webhook", body)
		assert.Equal(t, http.StatusOK, rec.Code, body)
	}
}

func TestWebhook_RejectsMalformedUpdates(t *testing.T) {
	e := newTestServer(t)

	for _, body := range []string{
		`not json`,
		`{"type":"carrier_pigeon","actor":{"id":"5000"}}`,
		`{"type":"text","text":"no actor"}`,
	} {
		rec := doJSON(e, http.MethodPost, "/webhook", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestCreateOrder_ThenListSaved(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/orders", `{"items":"2x coffee"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)

	rec = doJSON(e, http.MethodGet, "/api/v1/orders?view=saved", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []queries.GetOrdersQueryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, "draft", listed[0].Status)
}

func TestCreateOrder_RejectsEmptyItems(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/orders", `{"items":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrders_UnknownViewIsRejected(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/orders?view=everything", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCouriers_EmptyRoster(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/couriers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
