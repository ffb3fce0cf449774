package exerciseserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogstatic "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/adapters/static"
	catalogapp "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/application"
	exercisehttpmapper "github.com/Apurer/purchase-order-exercise/internal/domains/exercise/adapters/http/mapper"
	exercisememory "github.com/Apurer/purchase-order-exercise/internal/domains/exercise/adapters/memory"
	exerciseapp "github.com/Apurer/purchase-order-exercise/internal/domains/exercise/application"
	apierrors "github.com/Apurer/purchase-order-exercise/internal/shared/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	catalog := catalogstatic.NewCatalog()
	fixedNow := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	exerciseService := exerciseapp.NewService(
		exercisememory.NewSessionStore(time.Hour),
		catalog,
		exerciseapp.WithClock(func() time.Time { return fixedNow }),
	)
	return NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{
		CatalogAPI:  NewCatalogAPI(catalogapp.NewService(catalog)),
		ExerciseAPI: NewExerciseAPI(exerciseService),
		HealthAPI:   NewHealthAPI("memory", "inline"),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeExercise(t *testing.T, rec *httptest.ResponseRecorder) exercisehttpmapper.Exercise {
	t.Helper()
	var out exercisehttpmapper.Exercise
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) apierrors.ProblemDetail {
	t.Helper()
	assert.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var problem apierrors.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem), rec.Body.String())
	return problem
}

func openOrderForm(t *testing.T, router *gin.Engine) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/v1/exercises", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeExercise(t, rec).ID
	require.NotEmpty(t, id)

	rec = doJSON(t, router, http.MethodPost, "/v1/exercises/"+id+"/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodPost, "/v1/exercises/"+id+"/offer", map[string]string{"offerId": "off-001"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return id
}

func TestExerciseAPI_FullRun(t *testing.T) {
	router := newTestRouter(t)
	id := openOrderForm(t, router)
	base := "/v1/exercises/" + id

	for _, itemID := range []string{"it-1", "it-2", "it-3"} {
		rec := doJSON(t, router, http.MethodPost, base+"/items", map[string]string{"itemId": itemID})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	conditions := map[string]string{
		"deliveryDelay": "7 jours",
		"deliveryMode":  "Livraison payante (15€)",
		"paymentDelay":  "30 jours fin de mois",
		"paymentMode":   "Virement bancaire",
	}
	for field, value := range conditions {
		rec := doJSON(t, router, http.MethodPut, base+"/conditions/"+field, map[string]string{"value": value})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	rec := doJSON(t, router, http.MethodPut, base+"/signature", map[string]string{"signature": "Jean Dupont"})
	require.Equal(t, http.StatusOK, rec.Code)
	draft := decodeExercise(t, rec)
	assert.True(t, draft.CanFinish)
	assert.Equal(t, "1526.95", draft.Order.Subtotal)
	assert.Equal(t, "04/03/2025", draft.Order.Date)
	assert.Empty(t, draft.Order.Missing)

	rec = doJSON(t, router, http.MethodPost, base+"/finish", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	finished := decodeExercise(t, rec)
	assert.Equal(t, "REVIEW", finished.Step)
	require.NotNil(t, finished.Review)
	assert.Equal(t, 1, finished.Review.FailedCount)

	rec = doJSON(t, router, http.MethodGet, base+"/review", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var review exercisehttpmapper.Review
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &review))
	for _, c := range review.Criteria {
		if c.Key == "deliveryMode" {
			assert.False(t, c.Passed)
			assert.Contains(t, c.Tip, "Franco de port")
		}
	}

	rec = doJSON(t, router, http.MethodPost, base+"/preview", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeExercise(t, rec).Preview)

	rec = doJSON(t, router, http.MethodGet, base+"/document?format=text", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, rec.Body.String(), "Total Hors TVA : 1526.95 €")

	rec = doJSON(t, router, http.MethodPost, base+"/restart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	restarted := decodeExercise(t, rec)
	assert.Equal(t, "COMPARISON", restarted.Step)
	assert.Nil(t, restarted.Offer)
	assert.Nil(t, restarted.Review)
	require.NotNil(t, restarted.Order)
	assert.Empty(t, restarted.Order.Items)
	assert.Empty(t, restarted.Order.Signature)
}

func TestExerciseAPI_QuantityInput(t *testing.T) {
	router := newTestRouter(t)
	base := "/v1/exercises/" + openOrderForm(t, router)
	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost, base+"/items", map[string]string{"itemId": "it-1"}).Code)

	cases := []struct {
		body     string
		quantity int
		total    string
	}{
		{`{"quantity": 4}`, 4, "1796.00"},
		{`{"quantity": "0"}`, 1, "449.00"},
		{`{"quantity": -3}`, 1, "449.00"},
		{`{"quantity": "abc"}`, 1, "449.00"},
		{`{"quantity": "2 pièces"}`, 2, "898.00"},
	}
	for _, tc := range cases {
		rec := doJSON(t, router, http.MethodPut, base+"/items/it-1/quantity", tc.body)
		require.Equal(t, http.StatusOK, rec.Code, tc.body)
		line := decodeExercise(t, rec).Order.Items[0]
		assert.Equal(t, tc.quantity, line.Quantity, tc.body)
		assert.Equal(t, tc.total, line.Total, tc.body)
	}

	rec := doJSON(t, router, http.MethodPut, base+"/items/it-1/quantity", `{"quantity": true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = doJSON(t, router, http.MethodPut, base+"/items/it-1/quantity", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExerciseAPI_ErrorMapping(t *testing.T) {
	router := newTestRouter(t)
	base := "/v1/exercises/" + openOrderForm(t, router)

	rec := doJSON(t, router, http.MethodGet, "/v1/exercises/unknown", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "exercise", decodeProblem(t, rec).Extensions["resourceType"])

	rec = doJSON(t, router, http.MethodPost, base+"/items", map[string]string{"itemId": "it-4"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "item", decodeProblem(t, rec).Extensions["resourceType"])

	rec = doJSON(t, router, http.MethodPut, base+"/conditions/colour", map[string]string{"value": "bleu"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "condition", decodeProblem(t, rec).Extensions["resourceType"])

	rec = doJSON(t, router, http.MethodPut, base+"/conditions/deliveryMode", map[string]string{"value": "Par pigeon"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, apierrors.TypeUnprocessable, decodeProblem(t, rec).Type)

	rec = doJSON(t, router, http.MethodPut, base+"/conditions/deliveryMode", map[string]string{"value": ""})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, base+"/offer", map[string]string{"offerId": "off-002"})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apierrors.TypeStepConflict, decodeProblem(t, rec).Type)

	rec = doJSON(t, router, http.MethodPost, base+"/finish", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, apierrors.TypeIncompleteOrder, problem.Type)
	assert.Contains(t, problem.Extensions["missing"], "items")

	rec = doJSON(t, router, http.MethodGet, base+"/review", nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPost, base+"/items", `{"itemId":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, base+"/document?format=pdf", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExerciseAPI_SelectUnknownOffer(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/v1/exercises", nil)
	id := decodeExercise(t, rec).ID
	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost, "/v1/exercises/"+id+"/start", nil).Code)

	rec = doJSON(t, router, http.MethodPost, "/v1/exercises/"+id+"/offer", map[string]string{"offerId": "off-999"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "offer", decodeProblem(t, rec).Extensions["resourceType"])

	rec = doJSON(t, router, http.MethodGet, "/v1/exercises/"+id+"/document", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestExerciseAPI_DeleteExercise(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/v1/exercises", nil)
	id := decodeExercise(t, rec).ID
	assert.Equal(t, "/v1/exercises/"+id, rec.Header().Get("Location"))

	require.Equal(t, http.StatusNoContent, doJSON(t, router, http.MethodDelete, "/v1/exercises/"+id, nil).Code)
	require.Equal(t, http.StatusNotFound, doJSON(t, router, http.MethodGet, "/v1/exercises/"+id, nil).Code)
}
