package exerciseserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API.
type ApiHandleFunctions struct {
	// Routes for the catalog part of the API
	CatalogAPI CatalogAPI
	// Routes for the exercise part of the API
	ExerciseAPI ExerciseAPI
	// Routes for the health part of the API
	HealthAPI HealthAPI
}

// NewRouter returns a new router with the default gin middleware.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing engine. Middleware
// must be attached to the engine before calling it.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc is the default handler for routes without an implementation.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"Healthz",
			http.MethodGet,
			"/healthz",
			handleFunctions.HealthAPI.Healthz,
		},
		{
			"ListOffers",
			http.MethodGet,
			"/v1/catalog/offers",
			handleFunctions.CatalogAPI.ListOffers,
		},
		{
			"GetOffer",
			http.MethodGet,
			"/v1/catalog/offers/:offerId",
			handleFunctions.CatalogAPI.GetOffer,
		},
		{
			"ListOptions",
			http.MethodGet,
			"/v1/catalog/options",
			handleFunctions.CatalogAPI.ListOptions,
		},
		{
			"CreateExercise",
			http.MethodPost,
			"/v1/exercises",
			handleFunctions.ExerciseAPI.CreateExercise,
		},
		{
			"GetExercise",
			http.MethodGet,
			"/v1/exercises/:id",
			handleFunctions.ExerciseAPI.GetExercise,
		},
		{
			"DeleteExercise",
			http.MethodDelete,
			"/v1/exercises/:id",
			handleFunctions.ExerciseAPI.DeleteExercise,
		},
		{
			"StartExercise",
			http.MethodPost,
			"/v1/exercises/:id/start",
			handleFunctions.ExerciseAPI.StartExercise,
		},
		{
			"SelectOffer",
			http.MethodPost,
			"/v1/exercises/:id/offer",
			handleFunctions.ExerciseAPI.SelectOffer,
		},
		{
			"AddItem",
			http.MethodPost,
			"/v1/exercises/:id/items",
			handleFunctions.ExerciseAPI.AddItem,
		},
		{
			"RemoveItem",
			http.MethodDelete,
			"/v1/exercises/:id/items/:itemId",
			handleFunctions.ExerciseAPI.RemoveItem,
		},
		{
			"UpdateQuantity",
			http.MethodPut,
			"/v1/exercises/:id/items/:itemId/quantity",
			handleFunctions.ExerciseAPI.UpdateQuantity,
		},
		{
			"SetCondition",
			http.MethodPut,
			"/v1/exercises/:id/conditions/:field",
			handleFunctions.ExerciseAPI.SetCondition,
		},
		{
			"SetSignature",
			http.MethodPut,
			"/v1/exercises/:id/signature",
			handleFunctions.ExerciseAPI.SetSignature,
		},
		{
			"FinishExercise",
			http.MethodPost,
			"/v1/exercises/:id/finish",
			handleFunctions.ExerciseAPI.FinishExercise,
		},
		{
			"GetReview",
			http.MethodGet,
			"/v1/exercises/:id/review",
			handleFunctions.ExerciseAPI.GetReview,
		},
		{
			"TogglePreview",
			http.MethodPost,
			"/v1/exercises/:id/preview",
			handleFunctions.ExerciseAPI.TogglePreview,
		},
		{
			"GetDocument",
			http.MethodGet,
			"/v1/exercises/:id/document",
			handleFunctions.ExerciseAPI.GetDocument,
		},
		{
			"RestartExercise",
			http.MethodPost,
			"/v1/exercises/:id/restart",
			handleFunctions.ExerciseAPI.RestartExercise,
		},
	}
}
