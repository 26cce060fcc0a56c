package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tourbook/catalog/internal/models"
	"github.com/tourbook/catalog/internal/services"
	"github.com/tourbook/catalog/internal/types"
	"github.com/tourbook/catalog/internal/utils"
)

type UserRequest struct {
	Name     types.Optional[string]       `json:"name"`
	LastName types.Optional[string]       `json:"last_name"`
	Email    types.Optional[string]       `json:"email"`
	Birthday types.Optional[string]       `json:"birthday"`
	Genre    types.Optional[models.Genre] `json:"genre"`
	Key      types.Optional[string]       `json:"key"`
	Type     types.Optional[string]       `json:"type"`
}

type UserResponse struct {
	ID       uint         `json:"id"`
	Name     string       `json:"name"`
	LastName *string      `json:"last_name"`
	Email    string       `json:"email"`
	Birthday *string      `json:"birthday"`
	Genre    models.Genre `json:"genre"`
	Key      *string      `json:"key"`
	Type     *string      `json:"type"`
}

var userFields = map[string]string{
	"Name":     "name",
	"LastName": "last_name",
	"Email":    "email",
	"Birthday": "birthday",
	"Genre":    "genre",
	"Key":      "key",
	"Type":     "type",
}

func (r UserRequest) patch() (models.UserPatch, error) {
	patch := models.UserPatch{
		Name:     r.Name,
		LastName: r.LastName,
		Email:    r.Email,
		Genre:    r.Genre,
		Key:      r.Key,
		Type:     r.Type,
	}

	if raw, ok := r.Birthday.Get(); ok {
		birthday, err := utils.ParseDate(raw)

		if err != nil {
			return patch, &services.ValidationError{Fields: map[string]string{"Birthday": "datetime=" + types.DateLayout}}
		}

		patch.Birthday = types.Some(birthday)
	}

	return patch, nil
}

func (r UserRequest) required() map[string]bool {
	return map[string]bool{
		"Name":  r.Name.IsSet(),
		"Email": r.Email.IsSet(),
		"Genre": r.Genre.IsSet(),
	}
}

func toUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Name:     user.Name,
		LastName: user.LastName,
		Email:    user.Email,
		Birthday: utils.FormatDatePtr(user.Birthday),
		Genre:    user.Genre,
		Key:      user.Key,
		Type:     user.Type,
	}
}

func (h *Handler) ListUsers(ctx *gin.Context) {
	users, err := h.catalog.ListUsers(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err, userFields)
		return
	}

	response := make([]UserResponse, 0, len(users))

	for i := range users {
		response = append(response, toUserResponse(&users[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) GetUser(ctx *gin.Context) {
	id, ok := bindID(ctx)

	if !ok {
		return
	}

	user, err := h.catalog.GetUser(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, err, userFields)
		return
	}

	ctx.JSON(http.StatusOK, toUserResponse(user))
}

func (h *Handler) CreateUser(ctx *gin.Context) {
	var body UserRequest

	if !bindBody(ctx, &body) {
		return
	}

	patch, err := body.patch()

	if err != nil {
		respondError(ctx, err, userFields)
		return
	}

	var user models.User
	patch.Apply(&user)

	if err := h.catalog.CreateUser(ctx.Request.Context(), &user); err != nil {
		respondError(ctx, err, userFields)
		return
	}

	ctx.JSON(http.StatusCreated, toUserResponse(&user))
}

// UpdateUser serves PUT (all required fields must be sent) and PATCH.
func (h *Handler) UpdateUser(ctx *gin.Context) {
	id, ok := bindID(ctx)

	if !ok {
		return
	}

	var body UserRequest

	if !bindBody(ctx, &body) {
		return
	}

	if isReplace(ctx) {
		if err := requireFields(body.required()); err != nil {
			respondError(ctx, err, userFields)
			return
		}
	}

	patch, err := body.patch()

	if err != nil {
		respondError(ctx, err, userFields)
		return
	}

	user, err := h.catalog.UpdateUser(ctx.Request.Context(), id, patch)

	if err != nil {
		respondError(ctx, err, userFields)
		return
	}

	ctx.JSON(http.StatusOK, toUserResponse(user))
}

func (h *Handler) DeleteUser(ctx *gin.Context) {
	id, ok := bindID(ctx)

	if !ok {
		return
	}

	deleted, err := h.catalog.DeleteUser(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, err, userFields)
		return
	}

	if !deleted {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
