// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"rolodex/internal/models"
	"rolodex/internal/repository"
	"rolodex/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateContact handles POST /api/contacts
// @Summary Create a contact
// @Description Create an address-book entry from a multipart form; the optional photo field is normalized to JPEG
// @Tags contacts
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Contact
// @Failure 400 {object} models.ErrorResponse
// @Router /contacts [post]
func (s *Server) CreateContact(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	in, err := s.contactInputFromForm(c)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	contact, err := s.contactService.CreateContact(c.Context(), userID, in)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(contact)
}

// GetContacts handles GET /api/contacts
// @Summary List contacts
// @Description List the caller's contacts newest first, 50 per page, with optional filters
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)"
// @Param city query string false "Filter by city"
// @Param state query string false "Filter by state"
// @Param country query string false "Filter by country"
// @Param contact_type query string false "Filter by contact type"
// @Param preferred_communication query string false "Filter by communication method"
// @Param favorites query bool false "Only favorites"
// @Success 200 {object} service.ContactPage
// @Router /contacts [get]
func (s *Server) GetContacts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	filter := repository.ContactFilter{
		City:                   strings.TrimSpace(c.Query("city")),
		State:                  strings.TrimSpace(c.Query("state")),
		Country:                strings.TrimSpace(c.Query("country")),
		ContactType:            models.ContactType(strings.TrimSpace(c.Query("contact_type"))),
		PreferredCommunication: models.CommunicationMethod(strings.TrimSpace(c.Query("preferred_communication"))),
		FavoritesOnly:          c.QueryBool("favorites", false),
	}

	page, err := s.contactService.ListContacts(c.Context(), userID, filter, parsePage(c))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(page)
}

// SearchContacts handles GET /api/contacts/search
// @Summary Search contacts
// @Description Case-insensitive search across names, emails and phone numbers
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search query"
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} service.ContactPage
// @Router /contacts/search [get]
func (s *Server) SearchContacts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}

	page, err := s.contactService.SearchContacts(c.Context(), userID, query, parsePage(c))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(page)
}

// ExportContacts handles GET /api/contacts/export
// @Summary Export contacts as CSV
// @Description Download the caller's contacts, optionally narrowed by the same filters as the listing
// @Tags contacts
// @Produce text/csv
// @Security BearerAuth
// @Param city query string false "Filter by city"
// @Param state query string false "Filter by state"
// @Param country query string false "Filter by country"
// @Param contact_type query string false "Filter by contact type"
// @Param favorites query bool false "Only favorites"
// @Success 200 {string} string "CSV payload"
// @Failure 404 {object} models.ErrorResponse
// @Router /contacts/export [get]
func (s *Server) ExportContacts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	// The export surface is feature-flagged; a disabled flag looks like a
	// missing route to the client.
	if !s.flags.Enabled("contact_export", userID) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			&models.AppError{Code: "NOT_FOUND", Message: "Not found"})
	}

	filter := repository.ContactFilter{
		City:          strings.TrimSpace(c.Query("city")),
		State:         strings.TrimSpace(c.Query("state")),
		Country:       strings.TrimSpace(c.Query("country")),
		ContactType:   models.ContactType(strings.TrimSpace(c.Query("contact_type"))),
		FavoritesOnly: c.QueryBool("favorites", false),
	}

	contacts, err := s.contactService.ExportContacts(c.Context(), userID, filter)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{
		"first_name", "last_name", "contact", "email", "contact_type",
		"city", "state", "country", "is_favorite", "created_at",
	})
	for _, ct := range contacts {
		_ = w.Write([]string{
			ct.FirstName,
			ct.LastName,
			ct.Phone,
			ct.Email,
			string(ct.ContactType),
			ct.City,
			ct.State,
			ct.Country,
			strconv.FormatBool(ct.IsFavorite),
			ct.CreatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="contacts.csv"`)
	return c.Send(buf.Bytes())
}

// GetContactFacets handles GET /api/contacts/facets/:facet
// @Summary List facet values
// @Description Distinct values of one facet (cities, states, countries, contact_types, communication_methods) across the caller's contacts
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param facet path string true "Facet name"
// @Success 200 {object} object{facet=string,values=[]string}
// @Failure 400 {object} models.ErrorResponse
// @Router /contacts/facets/{facet} [get]
func (s *Server) GetContactFacets(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	facet := c.Params("facet")

	values, err := s.contactService.FacetValues(c.Context(), userID, facet)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"facet":  facet,
		"values": values,
	})
}

// GetContact handles GET /api/contacts/:id
// @Summary Get a contact
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} models.Contact
// @Failure 404 {object} models.ErrorResponse
// @Router /contacts/{id} [get]
func (s *Server) GetContact(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	contact, err := s.contactService.GetContact(c.Context(), userID, id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(contact)
}

// UpdateContact handles PUT /api/contacts/:id
// @Summary Update a contact
// @Description Replace a contact's fields with a multipart form submission
// @Tags contacts
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} models.Contact
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /contacts/{id} [put]
func (s *Server) UpdateContact(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	in, err := s.contactInputFromForm(c)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	contact, err := s.contactService.UpdateContact(c.Context(), userID, id, in)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(contact)
}

// DeleteContact handles DELETE /api/contacts/:id
// @Summary Delete a contact
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /contacts/{id} [delete]
func (s *Server) DeleteContact(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.contactService.DeleteContact(c.Context(), userID, id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Contact deleted"})
}

// contactInputFromForm builds a ContactInput from a multipart form. Malformed
// dates fail here; field-level validation happens in the service.
func (s *Server) contactInputFromForm(c *fiber.Ctx) (service.ContactInput, error) {
	photo, filename, err := s.readImageUpload(c, "photo")
	if err != nil {
		return service.ContactInput{}, err
	}

	in := service.ContactInput{
		FirstName:              strings.TrimSpace(c.FormValue("first_name")),
		LastName:               strings.TrimSpace(c.FormValue("last_name")),
		Phone:                  strings.TrimSpace(c.FormValue("contact")),
		AlternatePhone:         strings.TrimSpace(c.FormValue("alternate_contact")),
		Email:                  strings.TrimSpace(c.FormValue("email")),
		AlternateEmail:         strings.TrimSpace(c.FormValue("alternate_email")),
		ContactType:            models.ContactType(strings.TrimSpace(c.FormValue("contact_type"))),
		PreferredCommunication: models.CommunicationMethod(strings.TrimSpace(c.FormValue("preferred_communication"))),
		Gender:                 strings.TrimSpace(c.FormValue("gender")),
		Nickname:               strings.TrimSpace(c.FormValue("nickname")),
		JobTitle:               strings.TrimSpace(c.FormValue("job_title")),
		Company:                strings.TrimSpace(c.FormValue("company")),
		Website:                strings.TrimSpace(c.FormValue("website")),
		Address:                strings.TrimSpace(c.FormValue("address")),
		City:                   strings.TrimSpace(c.FormValue("city")),
		State:                  strings.TrimSpace(c.FormValue("state")),
		Country:                strings.TrimSpace(c.FormValue("country")),
		PostalCode:             strings.TrimSpace(c.FormValue("postal_code")),
		LinkedInUsername:       strings.TrimSpace(c.FormValue("linkedin_username")),
		TwitterUsername:        strings.TrimSpace(c.FormValue("twitter_username")),
		FacebookUsername:       strings.TrimSpace(c.FormValue("facebook_username")),
		InstagramUsername:      strings.TrimSpace(c.FormValue("instagram_username")),
		Notes:                  c.FormValue("notes"),
		IsFavorite:             c.FormValue("is_favorite") == "true",
		Photo:                  photo,
		PhotoFilename:          filename,
	}

	if dob := strings.TrimSpace(c.FormValue("date_of_birth")); dob != "" {
		parsed, err := time.Parse("2006-01-02", dob)
		if err != nil {
			return service.ContactInput{}, models.NewValidationError("Date of birth must use the YYYY-MM-DD format")
		}
		in.DateOfBirth = &parsed
	}

	return in, nil
}
