package controllers

import (
	"net/http"

	"github.com/smartbytes/canteen/app/services"
	"github.com/smartbytes/canteen/pkg/bind"
	"github.com/smartbytes/canteen/pkg/response"
)

type UserController struct {
	service *services.UserService
}

func NewUserController() *UserController {
	return &UserController{service: services.NewUserService()}
}

func (c *UserController) Index(w http.ResponseWriter, r *http.Request) {
	users, err := c.service.All(identity(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, users)
}

func (c *UserController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := c.service.Get(identity(r), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, user)
}

func (c *UserController) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var in struct {
		Role string `json:"role" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.UpdateRole(identity(r), id, in.Role)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, user)
}

func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := c.service.Delete(identity(r), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.NoContent(w)
}
