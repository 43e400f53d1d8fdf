package controllers

import (
	"net/http"

	"github.com/smartbytes/canteen/app/services"
	"github.com/smartbytes/canteen/pkg/bind"
	"github.com/smartbytes/canteen/pkg/response"
)

type FoodController struct {
	service *services.CatalogService
}

func NewFoodController() *FoodController {
	return &FoodController{service: services.NewCatalogService()}
}

func (c *FoodController) Index(w http.ResponseWriter, r *http.Request) {
	items, err := c.service.All(identity(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, items)
}

func (c *FoodController) Available(w http.ResponseWriter, r *http.Request) {
	items, err := c.service.Available(identity(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, items)
}

func (c *FoodController) Donations(w http.ResponseWriter, r *http.Request) {
	items, err := c.service.Donated(identity(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, items)
}

func (c *FoodController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid food item id")
		return
	}

	item, err := c.service.Get(identity(r), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, item)
}

func (c *FoodController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateFoodItemInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item, err := c.service.Create(identity(r), in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, item)
}

func (c *FoodController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid food item id")
		return
	}

	var in services.UpdateFoodItemInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item, err := c.service.Update(identity(r), id, in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, item)
}

func (c *FoodController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid food item id")
		return
	}

	if err := c.service.Delete(identity(r), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.NoContent(w)
}

func (c *FoodController) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid food item id")
		return
	}

	var in struct {
		Available *bool `json:"available"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if in.Available == nil {
		response.Error(w, http.StatusBadRequest, "available is required")
		return
	}

	item, err := c.service.SetAvailability(identity(r), id, *in.Available)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, item)
}

func (c *FoodController) Donate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid food item id")
		return
	}

	item, err := c.service.Donate(identity(r), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, item)
}

func (c *FoodController) MarkReceived(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid food item id")
		return
	}

	item, err := c.service.MarkReceived(identity(r), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, item)
}

func (c *FoodController) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid food item id")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	item, err := c.service.UploadPhoto(identity(r), id, header.Filename, file)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, item)
}
