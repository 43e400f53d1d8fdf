package services

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/app/policy"
	"github.com/smartbytes/canteen/app/repositories"
	"github.com/smartbytes/canteen/pkg/apperr"
	"github.com/smartbytes/canteen/pkg/cache"
	"github.com/smartbytes/canteen/pkg/event"
	"github.com/smartbytes/canteen/pkg/orm"
	"github.com/smartbytes/canteen/pkg/storage"
)

// CatalogService manages the food item catalog: daily availability, the
// donation pipeline towards NGOs and the delete cascade over order lines.
type CatalogService struct {
	items  *repositories.FoodItemRepository
	orders *repositories.OrderRepository
}

func NewCatalogService() *CatalogService {
	return &CatalogService{
		items:  repositories.NewFoodItemRepository(),
		orders: repositories.NewOrderRepository(),
	}
}

type CreateFoodItemInput struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	AvailableToday *bool           `json:"available_today"`
}

type UpdateFoodItemInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

// All returns the full catalog, donated and off-sale items included.
func (s *CatalogService) All(caller policy.Identity) ([]FoodItemResponse, error) {
	if err := policy.Authorize(caller, models.RoleCanteenManager, models.RoleAdmin); err != nil {
		return nil, err
	}

	items, err := s.items.All()
	if err != nil {
		return nil, err
	}
	return newFoodItemResponses(items), nil
}

// Available returns the menu on sale today.
func (s *CatalogService) Available(caller policy.Identity) ([]FoodItemResponse, error) {
	if err := policy.Authorize(caller, models.RoleStudent, models.RoleCanteenManager, models.RoleAdmin); err != nil {
		return nil, err
	}

	items, err := s.items.Available()
	if err != nil {
		return nil, err
	}
	return newFoodItemResponses(items), nil
}

// Donated returns donated items that no NGO has collected yet.
func (s *CatalogService) Donated(caller policy.Identity) ([]FoodItemResponse, error) {
	if err := policy.Authorize(caller, models.RoleNGO); err != nil {
		return nil, err
	}

	items, err := s.items.DonatedUnreceived()
	if err != nil {
		return nil, err
	}
	return newFoodItemResponses(items), nil
}

// Get returns a single catalog entry by id.
func (s *CatalogService) Get(caller policy.Identity, id uint) (FoodItemResponse, error) {
	if err := policy.Authorize(caller, models.RoleStudent, models.RoleCanteenManager, models.RoleAdmin, models.RoleNGO); err != nil {
		return FoodItemResponse{}, err
	}

	item, err := s.items.FindByID(id)
	if err != nil {
		return FoodItemResponse{}, fetchErr(err, "food item %d not found", id)
	}
	return newFoodItemResponse(item), nil
}

// Create adds a new food item to the catalog.
func (s *CatalogService) Create(caller policy.Identity, in CreateFoodItemInput) (FoodItemResponse, error) {
	if err := policy.Authorize(caller, models.RoleCanteenManager); err != nil {
		return FoodItemResponse{}, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return FoodItemResponse{}, apperr.Conflict("food item name must not be blank")
	}
	if in.Price.IsNegative() {
		return FoodItemResponse{}, apperr.InvalidArgument("price must not be negative")
	}

	exists, err := s.items.ExistsByName(name)
	if err != nil {
		return FoodItemResponse{}, err
	}
	if exists {
		return FoodItemResponse{}, apperr.Conflict("food item %q already exists", name)
	}

	item := models.FoodItem{
		Name:           name,
		Description:    strings.TrimSpace(in.Description),
		Price:          in.Price,
		AvailableToday: true,
	}
	if in.AvailableToday != nil {
		item.AvailableToday = *in.AvailableToday
	}

	if err := s.items.Create(&item); err != nil {
		return FoodItemResponse{}, err
	}
	s.invalidateMenu()

	return newFoodItemResponse(item), nil
}

// Update changes name, description or price of an existing item.
func (s *CatalogService) Update(caller policy.Identity, id uint, in UpdateFoodItemInput) (FoodItemResponse, error) {
	if err := policy.Authorize(caller, models.RoleCanteenManager); err != nil {
		return FoodItemResponse{}, err
	}

	item, err := s.items.FindByID(id)
	if err != nil {
		return FoodItemResponse{}, fetchErr(err, "food item %d not found", id)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return FoodItemResponse{}, apperr.Conflict("food item name must not be blank")
		}
		if name != item.Name {
			exists, err := s.items.ExistsByName(name)
			if err != nil {
				return FoodItemResponse{}, err
			}
			if exists {
				return FoodItemResponse{}, apperr.Conflict("food item %q already exists", name)
			}
			item.Name = name
		}
	}
	if in.Description != nil {
		item.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return FoodItemResponse{}, apperr.InvalidArgument("price must not be negative")
		}
		item.Price = *in.Price
	}

	if err := s.items.Save(&item); err != nil {
		return FoodItemResponse{}, err
	}
	s.invalidateMenu()

	return newFoodItemResponse(item), nil
}

// Delete removes an item and every order line referencing it. Totals of the
// affected orders stay as placed.
func (s *CatalogService) Delete(caller policy.Identity, id uint) error {
	if err := policy.Authorize(caller, models.RoleCanteenManager); err != nil {
		return err
	}

	item, err := s.items.FindByID(id)
	if err != nil {
		return fetchErr(err, "food item %d not found", id)
	}

	err = orm.Transaction(func(tx *orm.Query) error {
		if err := s.orders.WithTx(tx).DeleteLinesByFoodItem(item.ID); err != nil {
			return err
		}
		return s.items.WithTx(tx).Delete(&item)
	})
	if err != nil {
		return err
	}
	s.invalidateMenu()

	return nil
}

// SetAvailability flips whether the item is on sale today. Putting an item
// back on sale pulls it out of the donation pipeline: both donation
// timestamps are cleared.
func (s *CatalogService) SetAvailability(caller policy.Identity, id uint, available bool) (FoodItemResponse, error) {
	if err := policy.Authorize(caller, models.RoleCanteenManager); err != nil {
		return FoodItemResponse{}, err
	}

	item, err := s.items.FindByID(id)
	if err != nil {
		return FoodItemResponse{}, fetchErr(err, "food item %d not found", id)
	}

	item.AvailableToday = available
	if available {
		item.DonatedAt = nil
		item.ReceivedByNgoAt = nil
	}

	if err := s.items.Save(&item); err != nil {
		return FoodItemResponse{}, err
	}
	s.invalidateMenu()

	return newFoodItemResponse(item), nil
}

// Donate routes surplus food to the donation pipeline. The item goes off
// sale and becomes visible to NGOs.
func (s *CatalogService) Donate(caller policy.Identity, id uint) (FoodItemResponse, error) {
	if err := policy.Authorize(caller, models.RoleCanteenManager); err != nil {
		return FoodItemResponse{}, err
	}

	item, err := s.items.FindByID(id)
	if err != nil {
		return FoodItemResponse{}, fetchErr(err, "food item %d not found", id)
	}
	if item.DonatedAt != nil {
		return FoodItemResponse{}, apperr.InvalidTransition("food item %d is already donated", id)
	}

	now := time.Now()
	item.DonatedAt = &now
	item.ReceivedByNgoAt = nil
	item.AvailableToday = false

	if err := s.items.Save(&item); err != nil {
		return FoodItemResponse{}, err
	}
	s.invalidateMenu()
	event.Fire(EventFoodDonated, FoodDonated{FoodItemID: item.ID, Name: item.Name})

	return newFoodItemResponse(item), nil
}

// MarkReceived records that an NGO collected the donated item.
func (s *CatalogService) MarkReceived(caller policy.Identity, id uint) (FoodItemResponse, error) {
	if err := policy.Authorize(caller, models.RoleNGO); err != nil {
		return FoodItemResponse{}, err
	}

	item, err := s.items.FindByID(id)
	if err != nil {
		return FoodItemResponse{}, fetchErr(err, "food item %d not found", id)
	}
	if item.DonatedAt == nil {
		return FoodItemResponse{}, apperr.InvalidTransition("food item %d is not donated", id)
	}
	if item.ReceivedByNgoAt != nil {
		return FoodItemResponse{}, apperr.InvalidTransition("food item %d was already collected", id)
	}

	now := time.Now()
	item.ReceivedByNgoAt = &now

	if err := s.items.Save(&item); err != nil {
		return FoodItemResponse{}, err
	}
	event.Fire(EventFoodReceived, FoodReceived{FoodItemID: item.ID, Name: item.Name})

	return newFoodItemResponse(item), nil
}

// UploadPhoto stores the item photo on the configured disk and records its
// storage path.
func (s *CatalogService) UploadPhoto(caller policy.Identity, id uint, filename string, r io.Reader) (FoodItemResponse, error) {
	if err := policy.Authorize(caller, models.RoleCanteenManager); err != nil {
		return FoodItemResponse{}, err
	}

	item, err := s.items.FindByID(id)
	if err != nil {
		return FoodItemResponse{}, fetchErr(err, "food item %d not found", id)
	}

	path := fmt.Sprintf("food/%d%s", item.ID, strings.ToLower(filepath.Ext(filename)))
	if err := storage.Put(path, r); err != nil {
		return FoodItemResponse{}, err
	}

	item.PhotoPath = path
	if err := s.items.Save(&item); err != nil {
		return FoodItemResponse{}, err
	}
	s.invalidateMenu()

	return newFoodItemResponse(item), nil
}

// ResetAvailability takes every item off sale at the end of the day. Run by
// the nightly scheduler.
func (s *CatalogService) ResetAvailability() error {
	if err := s.items.ClearAvailability(); err != nil {
		return err
	}
	s.invalidateMenu()
	return nil
}

func (s *CatalogService) invalidateMenu() {
	cache.Del(repositories.AvailableMenuCacheKey)
}
