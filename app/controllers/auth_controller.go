package controllers

import (
	"net/http"

	"github.com/smartbytes/canteen/app/services"
	"github.com/smartbytes/canteen/pkg/bind"
	"github.com/smartbytes/canteen/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := c.service.Register(in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, resp)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := c.service.Login(in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, resp)
}
