package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jdcrm/backend/internal/application/booking"
)

// BookingHandler handles booking lifecycle and payment schedule endpoints
type BookingHandler struct {
	BaseHandler
	bookingService *booking.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *booking.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// List godoc
//
//	@Summary		List bookings
//	@Description	Get a paginated list of bookings with optional filters
//	@Tags			bookings
//	@Produce		json
//	@Param			status		query		string	false	"Filter by status"	Enums(PENDING, CONFIRMED, CANCELLED)
//	@Param			lead_id		query		string	false	"Filter by lead"
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)
//	@Success		200			{object}	dto.Response{data=[]booking.BookingResponse}
//	@Security		BearerAuth
//	@Router			/bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter booking.BookingListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	bookings, total, err := h.bookingService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, bookings, total, filter.Page, filter.PageSize)
}

// ListForLead godoc
//
//	@Summary		List bookings for a lead
//	@Description	Get all bookings opened against a lead
//	@Tags			bookings
//	@Produce		json
//	@Param			id	path		string	true	"Lead ID"
//	@Success		200	{object}	dto.Response{data=[]booking.BookingResponse}
//	@Security		BearerAuth
//	@Router			/leads/{id}/bookings [get]
func (h *BookingHandler) ListForLead(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	bookings, err := h.bookingService.ListForLead(c.Request.Context(), tenantID, leadID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bookings)
}

// Get godoc
//
//	@Summary		Get a booking
//	@Description	Get a single booking with its charges and schedule
//	@Tags			bookings
//	@Produce		json
//	@Param			id	path		string	true	"Booking ID"
//	@Success		200	{object}	dto.Response{data=booking.BookingResponse}
//	@Failure		404	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	result, err := h.bookingService.GetByID(c.Request.Context(), tenantID, bookingID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Create godoc
//
//	@Summary		Open a booking
//	@Description	Open a pending booking for a lead against an available unit
//	@Tags			bookings
//	@Accept			json
//	@Produce		json
//	@Param			booking	body		booking.CreateBookingRequest	true	"Booking data"
//	@Success		201		{object}	dto.Response{data=booking.BookingResponse}
//	@Failure		400		{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		409		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.bookingService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// Confirm godoc
//
//	@Summary		Confirm a booking
//	@Description	Confirm a pending booking; requires a valid schedule and an available unit
//	@Tags			bookings
//	@Produce		json
//	@Param			id	path		string	true	"Booking ID"
//	@Success		200	{object}	dto.Response{data=booking.BookingResponse}
//	@Failure		409	{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		422	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	result, err := h.bookingService.Confirm(c.Request.Context(), tenantID, bookingID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Cancel godoc
//
//	@Summary		Cancel a booking
//	@Description	Cancel a pending booking and release its unit hold
//	@Tags			bookings
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Booking ID"
//	@Param			body	body		booking.CancelBookingRequest	false	"Cancellation reason"
//	@Success		200		{object}	dto.Response{data=booking.BookingResponse}
//	@Failure		409		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	var req booking.CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	result, err := h.bookingService.Cancel(c.Request.Context(), tenantID, bookingID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// AddCharge godoc
//
//	@Summary		Add a charge
//	@Description	Add a fixed or percent charge to a pending booking
//	@Tags			bookings
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Booking ID"
//	@Param			charge	body		booking.AddChargeRequest	true	"Charge"
//	@Success		200		{object}	dto.Response{data=booking.BookingResponse}
//	@Failure		409		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/bookings/{id}/charges [post]
func (h *BookingHandler) AddCharge(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	var req booking.AddChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.bookingService.AddCharge(c.Request.Context(), tenantID, bookingID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// RemoveCharge godoc
//
//	@Summary		Remove a charge
//	@Description	Remove a charge from a pending booking
//	@Tags			bookings
//	@Produce		json
//	@Param			id			path		string	true	"Booking ID"
//	@Param			charge_id	path		string	true	"Charge ID"
//	@Success		200			{object}	dto.Response{data=booking.BookingResponse}
//	@Failure		404			{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/bookings/{id}/charges/{charge_id} [delete]
func (h *BookingHandler) RemoveCharge(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	chargeID, err := uuid.Parse(c.Param("charge_id"))
	if err != nil {
		h.BadRequest(c, "Invalid charge ID")
		return
	}

	result, err := h.bookingService.RemoveCharge(c.Request.Context(), tenantID, bookingID, chargeID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// GetSchedule godoc
//
//	@Summary		Get the payment schedule
//	@Description	Get a booking's payment plan with funding and paid totals
//	@Tags			bookings
//	@Produce		json
//	@Param			id	path		string	true	"Booking ID"
//	@Success		200	{object}	dto.Response{data=booking.ScheduleSummaryResponse}
//	@Failure		404	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/bookings/{id}/schedule [get]
func (h *BookingHandler) GetSchedule(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	schedule, err := h.bookingService.GetSchedule(c.Request.Context(), tenantID, bookingID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, schedule)
}

// ApplyScheduleTemplate godoc
//
//	@Summary		Apply a schedule template
//	@Description	Rebuild the payment schedule from percentage entries; the last milestone absorbs rounding
//	@Tags			bookings
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string							true	"Booking ID"
//	@Param			template	body		booking.ApplyTemplateRequest	true	"Template entries"
//	@Success		200			{object}	dto.Response{data=booking.ScheduleSummaryResponse}
//	@Failure		422			{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/bookings/{id}/schedule/template [post]
func (h *BookingHandler) ApplyScheduleTemplate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	var req booking.ApplyTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	schedule, err := h.bookingService.ApplyScheduleTemplate(c.Request.Context(), tenantID, bookingID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, schedule)
}

// ReplaceSchedule godoc
//
//	@Summary		Replace the payment schedule
//	@Description	Replace the full milestone list; amounts must sum to the deal amount
//	@Tags			bookings
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string							true	"Booking ID"
//	@Param			schedule	body		booking.ReplaceScheduleRequest	true	"Milestones"
//	@Success		200			{object}	dto.Response{data=booking.ScheduleSummaryResponse}
//	@Failure		422			{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/bookings/{id}/schedule [put]
func (h *BookingHandler) ReplaceSchedule(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	var req booking.ReplaceScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	schedule, err := h.bookingService.ReplaceSchedule(c.Request.Context(), tenantID, bookingID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, schedule)
}

// RecordPayment godoc
//
//	@Summary		Record a payment
//	@Description	Mark a named milestone as paid
//	@Tags			bookings
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Booking ID"
//	@Param			payment	body		booking.RecordPaymentRequest	true	"Payment"
//	@Success		200		{object}	dto.Response{data=booking.ScheduleSummaryResponse}
//	@Failure		404		{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		409		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/bookings/{id}/payments [post]
func (h *BookingHandler) RecordPayment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	var req booking.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	schedule, err := h.bookingService.RecordPayment(c.Request.Context(), tenantID, bookingID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, schedule)
}

// UploadDocument godoc
//
//	@Summary		Upload a booking document
//	@Description	Attach a document (KYC, agreement) to a booking
//	@Tags			bookings
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		string	true	"Booking ID"
//	@Param			file	formData	file	true	"Document file"
//	@Success		201		{object}	dto.Response{data=booking.DocumentResponse}
//	@Failure		400		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/bookings/{id}/documents [post]
func (h *BookingHandler) UploadDocument(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file in form data")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "Failed to read uploaded file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	doc, err := h.bookingService.UploadDocument(c.Request.Context(), tenantID, bookingID,
		fileHeader.Filename, contentType, data)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, doc)
}

// DocumentURL godoc
//
//	@Summary		Get a document link
//	@Description	Get a time-limited download link for a booking document
//	@Tags			bookings
//	@Produce		json
//	@Param			id			path		string	true	"Booking ID"
//	@Param			filename	path		string	true	"Document filename"
//	@Success		200			{object}	dto.Response{data=booking.DocumentResponse}
//	@Failure		404			{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/bookings/{id}/documents/{filename} [get]
func (h *BookingHandler) DocumentURL(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	filename := c.Param("filename")
	if filename == "" {
		h.BadRequest(c, "Missing document filename")
		return
	}

	doc, err := h.bookingService.DocumentURL(c.Request.Context(), tenantID, bookingID, filename)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, doc)
}
