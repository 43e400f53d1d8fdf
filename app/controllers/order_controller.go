package controllers

import (
	"net/http"

	"github.com/smartbytes/canteen/app/services"
	"github.com/smartbytes/canteen/pkg/bind"
	"github.com/smartbytes/canteen/pkg/response"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController() *OrderController {
	return &OrderController{service: services.NewOrderService()}
}

func (c *OrderController) Place(w http.ResponseWriter, r *http.Request) {
	var in services.PlaceOrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.service.Place(identity(r), in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, order)
}

func (c *OrderController) My(w http.ResponseWriter, r *http.Request) {
	orders, err := c.service.MyOrders(identity(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, orders)
}

func (c *OrderController) MyShow(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := c.service.MyOrder(identity(r), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, order)
}

func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := c.service.Cancel(identity(r), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, order)
}

func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	orders, err := c.service.All(identity(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, orders)
}

func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := c.service.Get(identity(r), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, order)
}

func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid order id")
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

	order, err := c.service.UpdateStatus(identity(r), id, in.Status)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, order)
}
