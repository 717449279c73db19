package main

import (
	"errors"
	"net/http"
	"strconv"

	"sashambhu/internal/domain/storage"
	"sashambhu/internal/domain/users"

	"github.com/go-chi/chi/v5"
)

type userKey string

const userCtx userKey = "user"

func getUserFromContext(r *http.Request) *users.User {
	if user, ok := r.Context().Value(userCtx).(*users.User); ok {
		return user
	}
	return nil
}

// CreateStaffPayload registers a staff member by the email they sign in with.
type CreateStaffPayload struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Name  string `json:"name" validate:"required,max=100"`
	Role  string `json:"role" validate:"required,oneof=admin counter"`
}

type UpdateStaffPayload struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
	Role *string `json:"role" validate:"omitempty,oneof=admin counter"`
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// getMeHandler godoc
//
//	@Summary		Current staff member
//	@Tags			Staff
//	@Produce		json
//	@Success		200	{object}	users.User
//	@Failure		401	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/me [get]
func (app *application) getMeHandler(w http.ResponseWriter, r *http.Request) {
	app.jsonResponse(w, http.StatusOK, getUserFromContext(r))
}

// listStaffHandler godoc
//
//	@Summary		List staff
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{array}		users.User
//	@Failure		500	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/users [get]
func (app *application) listStaffHandler(w http.ResponseWriter, r *http.Request) {
	list, err := app.store.Users.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, list)
}

// createStaffHandler godoc
//
//	@Summary		Add a staff member
//	@Description	Grants an identity-provider account access to the counter or admin API.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateStaffPayload	true	"Staff member"
//	@Success		201		{object}	users.User
//	@Failure		400		{object}	error
//	@Failure		409		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/users [post]
func (app *application) createStaffHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateStaffPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := &users.User{Email: payload.Email, Name: payload.Name, Role: users.Role(payload.Role)}
	if err := app.store.Users.Create(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, users.ErrDuplicateEmail):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.logger.Infow("staff added", "user_id", user.ID, "role", user.Role, "by", getUserFromContext(r).ID)
	app.jsonResponse(w, http.StatusCreated, user)
}

// updateStaffHandler godoc
//
//	@Summary		Rename a staff member or change their role
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"User ID"
//	@Param			payload	body		UpdateStaffPayload	true	"Fields to change"
//	@Success		200		{object}	users.User
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/users/{id} [patch]
func (app *application) updateStaffHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload UpdateStaffPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	me := getUserFromContext(r)
	if id == me.ID && payload.Role != nil && users.Role(*payload.Role) != me.Role {
		app.badRequestResponse(w, r, errors.New("you cannot change your own role"))
		return
	}

	upd := users.Update{Name: payload.Name}
	if payload.Role != nil {
		role := users.Role(*payload.Role)
		upd.Role = &role
	}

	user, err := app.store.Users.Update(r.Context(), id, upd)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}
	app.jsonResponse(w, http.StatusOK, user)
}

// deleteStaffHandler godoc
//
//	@Summary		Remove a staff member
//	@Description	Revokes access and forgets the member's push tokens.
//	@Tags			Admin
//	@Param			id	path	int	true	"User ID"
//	@Success		204
//	@Failure		400	{object}	error
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/users/{id} [delete]
func (app *application) deleteStaffHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if id == getUserFromContext(r).ID {
		app.badRequestResponse(w, r, errors.New("you cannot remove yourself"))
		return
	}

	err = app.store.WithStaffTx(r.Context(), func(s *storage.StaffTx) error {
		if _, err := s.PushTokens.DeleteUserTokens(r.Context(), id); err != nil {
			return err
		}
		return s.Users.Delete(r.Context(), id)
	})
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
