package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"travelguide/internal/models/request_models"
	"travelguide/internal/services"
	"travelguide/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{itineraryService: itineraryService}
}

// GetItinerary godoc
// @Summary Latest itinerary version of a trip
// @Tags Itinerary
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} response_models.ItineraryResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/itinerary/{tripId} [get]
func (i *ItineraryController) GetItinerary(c *gin.Context) {
	userID, tripID, ok := tripScope(c)
	if !ok {
		return
	}

	itinerary, err := i.itineraryService.GetLatestItinerary(c.Request.Context(), userID, tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, itinerary)
}

// GetGenerationStatus godoc
// @Summary Itinerary generation status
// @Description pending, succeeded, failed or not_started. Clients poll every 3 seconds.
// @Tags Itinerary
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} response_models.GenerationStatusResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/itinerary/{tripId}/status [get]
func (i *ItineraryController) GetGenerationStatus(c *gin.Context) {
	userID, tripID, ok := tripScope(c)
	if !ok {
		return
	}

	status, err := i.itineraryService.GetGenerationStatus(c.Request.Context(), userID, tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, status)
}

// GenerateItinerary godoc
// @Summary Generate the next itinerary version
// @Tags Itinerary
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 201 {object} response_models.ItineraryResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/itinerary/generate/{tripId} [post]
func (i *ItineraryController) GenerateItinerary(c *gin.Context) {
	userID, tripID, ok := tripScope(c)
	if !ok {
		return
	}

	itinerary, err := i.itineraryService.GenerateItinerary(c.Request.Context(), userID, tripID, "")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, http.StatusCreated, itinerary)
}

// RegenerateItinerary godoc
// @Summary Regenerate the itinerary with feedback
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.RegenerateItineraryRequest false "Feedback for the new version"
// @Success 201 {object} response_models.ItineraryResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/itinerary/{tripId}/regenerate [post]
func (i *ItineraryController) RegenerateItinerary(c *gin.Context) {
	userID, tripID, ok := tripScope(c)
	if !ok {
		return
	}

	var req request_models.RegenerateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(c, http.StatusBadRequest, "Feedback must be at most 2000 characters")
		return
	}

	itinerary, err := i.itineraryService.GenerateItinerary(c.Request.Context(), userID, tripID, req.Feedback)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, http.StatusCreated, itinerary)
}

// UpdateItem godoc
// @Summary Edit one item of the latest itinerary
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param itemId path string true "Item ID"
// @Param request body request_models.UpdateItineraryItemRequest true "Fields to change"
// @Success 200 {object} response_models.ItineraryResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/itinerary/{tripId}/items/{itemId} [put]
func (i *ItineraryController) UpdateItem(c *gin.Context) {
	userID, tripID, ok := tripScope(c)
	if !ok {
		return
	}
	itemID := c.Param("itemId")
	if itemID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Item ID is required")
		return
	}

	var req request_models.UpdateItineraryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	itinerary, err := i.itineraryService.UpdateItineraryItem(c.Request.Context(), userID, tripID, itemID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, itinerary)
}

// ConfirmItinerary godoc
// @Summary Mark the latest itinerary confirmed
// @Tags Itinerary
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} response_models.ItineraryResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/itinerary/{tripId}/confirm [post]
func (i *ItineraryController) ConfirmItinerary(c *gin.Context) {
	userID, tripID, ok := tripScope(c)
	if !ok {
		return
	}

	itinerary, err := i.itineraryService.ConfirmItinerary(c.Request.Context(), userID, tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, itinerary)
}

func tripScope(c *gin.Context) (userID, tripID uuid.UUID, ok bool) {
	if userID, ok = currentUserID(c); !ok {
		return
	}
	tripID, ok = uuidParam(c, "tripId")
	return
}
