package controllers

import (
	"net/http"

	"github.com/smartbytes/canteen/app/services"
	"github.com/smartbytes/canteen/pkg/bind"
	"github.com/smartbytes/canteen/pkg/response"
)

type PaymentController struct {
	service *services.PaymentService
}

func NewPaymentController() *PaymentController {
	return &PaymentController{service: services.NewPaymentService()}
}

func (c *PaymentController) Process(w http.ResponseWriter, r *http.Request) {
	var in services.ProcessPaymentInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	payment, err := c.service.Process(identity(r), in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, payment)
}

func (c *PaymentController) My(w http.ResponseWriter, r *http.Request) {
	payments, err := c.service.MyPayments(identity(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, payments)
}

func (c *PaymentController) MyShow(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	payment, err := c.service.MyPayment(identity(r), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, payment)
}

func (c *PaymentController) Index(w http.ResponseWriter, r *http.Request) {
	payments, err := c.service.All(identity(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, payments)
}

func (c *PaymentController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	payment, err := c.service.Get(identity(r), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, payment)
}

func (c *PaymentController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	var in struct {
		Status string `json:"status" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	payment, err := c.service.UpdateStatus(identity(r), id, in.Status)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, payment)
}
