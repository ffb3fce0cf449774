package exerciseserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/adapters/document"
	exercisehttpmapper "github.com/Apurer/purchase-order-exercise/internal/domains/exercise/adapters/http/mapper"
	exercisedomain "github.com/Apurer/purchase-order-exercise/internal/domains/exercise/domain"
	exerciseports "github.com/Apurer/purchase-order-exercise/internal/domains/exercise/ports"
	apierrors "github.com/Apurer/purchase-order-exercise/internal/shared/errors"
)

// ExerciseAPI wires HTTP transport with the exercise wizard service.
type ExerciseAPI struct {
	service exerciseports.Service
}

// NewExerciseAPI creates an ExerciseAPI backed by the provided service.
func NewExerciseAPI(service exerciseports.Service) ExerciseAPI {
	return ExerciseAPI{service: service}
}

// Post /v1/exercises
// Opens a new exercise session on the intro screen
func (api *ExerciseAPI) CreateExercise(c *gin.Context) {
	exercise, err := api.service.Create(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", "/v1/exercises/"+exercise.ID)
	c.JSON(http.StatusCreated, exercisehttpmapper.FromDomainExercise(exercise))
}

// Get /v1/exercises/:id
func (api *ExerciseAPI) GetExercise(c *gin.Context) {
	exercise, err := api.service.Get(c.Request.Context(), c.Param("id"))
	api.respondExercise(c, exercise, err)
}

// Delete /v1/exercises/:id
func (api *ExerciseAPI) DeleteExercise(c *gin.Context) {
	if err := api.service.Discard(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /v1/exercises/:id/start
// Leaves the intro screen for the offer comparison
func (api *ExerciseAPI) StartExercise(c *gin.Context) {
	exercise, err := api.service.Start(c.Request.Context(), c.Param("id"))
	api.respondExercise(c, exercise, err)
}

// Post /v1/exercises/:id/offer
// Selects an offer and opens the order form
func (api *ExerciseAPI) SelectOffer(c *gin.Context) {
	var payload exercisehttpmapper.SelectOfferRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	exercise, err := api.service.SelectOffer(c.Request.Context(), c.Param("id"), payload.OfferID)
	api.respondExercise(c, exercise, err)
}

// Post /v1/exercises/:id/items
// Adds an offer line at its recommended quantity
func (api *ExerciseAPI) AddItem(c *gin.Context) {
	var payload exercisehttpmapper.AddItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	exercise, err := api.service.AddItem(c.Request.Context(), c.Param("id"), payload.ItemID)
	api.respondExercise(c, exercise, err)
}

// Delete /v1/exercises/:id/items/:itemId
func (api *ExerciseAPI) RemoveItem(c *gin.Context) {
	exercise, err := api.service.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	api.respondExercise(c, exercise, err)
}

// Put /v1/exercises/:id/items/:itemId/quantity
// Sets a line quantity; values below 1 are raised to 1
func (api *ExerciseAPI) UpdateQuantity(c *gin.Context) {
	var payload exercisehttpmapper.QuantityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	quantity, err := payload.ParseQuantity()
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	exercise, err := api.service.UpdateQuantity(c.Request.Context(), c.Param("id"), c.Param("itemId"), quantity)
	api.respondExercise(c, exercise, err)
}

// Put /v1/exercises/:id/conditions/:field
func (api *ExerciseAPI) SetCondition(c *gin.Context) {
	var payload exercisehttpmapper.ConditionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	exercise, err := api.service.SetCondition(c.Request.Context(), c.Param("id"), c.Param("field"), *payload.Value)
	api.respondExercise(c, exercise, err)
}

// Put /v1/exercises/:id/signature
func (api *ExerciseAPI) SetSignature(c *gin.Context) {
	var payload exercisehttpmapper.SignatureRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	exercise, err := api.service.SetSignature(c.Request.Context(), c.Param("id"), *payload.Signature)
	api.respondExercise(c, exercise, err)
}

// Post /v1/exercises/:id/finish
// Submits the order and returns the session with its review
func (api *ExerciseAPI) FinishExercise(c *gin.Context) {
	exercise, err := api.service.Finish(c.Request.Context(), c.Param("id"))
	api.respondExercise(c, exercise, err)
}

// Get /v1/exercises/:id/review
func (api *ExerciseAPI) GetReview(c *gin.Context) {
	review, err := api.service.Review(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercisehttpmapper.FromDomainReview(*review))
}

// Post /v1/exercises/:id/preview
// Switches the review screen between checklist and document
func (api *ExerciseAPI) TogglePreview(c *gin.Context) {
	exercise, err := api.service.TogglePreview(c.Request.Context(), c.Param("id"))
	api.respondExercise(c, exercise, err)
}

// Get /v1/exercises/:id/document
// Renders the order as HTML, or plain text with ?format=text
func (api *ExerciseAPI) GetDocument(c *gin.Context) {
	format, err := document.ParseFormat(c.Query("format"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	exercise, err := api.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if exercise.Offer == nil || exercise.Order == nil {
		responder.Respond(c, apierrors.NewStepConflictProblem("no offer has been selected yet", string(exercise.Step)))
		return
	}
	body, err := document.RenderBytes(exercise.Order, format)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, format.ContentType(), body)
}

// Post /v1/exercises/:id/restart
// Discards the draft and returns to the offer comparison
func (api *ExerciseAPI) RestartExercise(c *gin.Context) {
	exercise, err := api.service.Restart(c.Request.Context(), c.Param("id"))
	api.respondExercise(c, exercise, err)
}

func (api *ExerciseAPI) respondExercise(c *gin.Context, exercise *exercisedomain.Exercise, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	if exercise == nil {
		respondError(c, errors.New("exercise service returned no session"))
		return
	}
	c.JSON(http.StatusOK, exercisehttpmapper.FromDomainExercise(exercise))
}
