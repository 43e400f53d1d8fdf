package repositories

import (
	"time"

	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/pkg/orm"
)

// AvailableMenuCacheKey is the cache key for the available-today menu.
// Every catalog mutation invalidates it.
const AvailableMenuCacheKey = "food:available"

// FoodItemRepository handles database operations for FoodItem.
type FoodItemRepository struct {
	tx *orm.Query
}

func NewFoodItemRepository() *FoodItemRepository {
	return &FoodItemRepository{}
}

// WithTx returns a repository bound to the given transaction.
func (r *FoodItemRepository) WithTx(tx *orm.Query) *FoodItemRepository {
	return &FoodItemRepository{tx: tx}
}

func (r *FoodItemRepository) q() *orm.Query {
	if r.tx != nil {
		return r.tx
	}
	return orm.DB()
}

// FindByID looks up a food item by primary key.
func (r *FoodItemRepository) FindByID(id uint) (models.FoodItem, error) {
	var item models.FoodItem
	err := r.q().Model(&models.FoodItem{}).Where("id = ?", id).First(&item)
	return item, err
}

// ExistsByName reports whether an item with the given name exists.
func (r *FoodItemRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.q().Model(&models.FoodItem{}).Where("name = ?", name).Count(&count)
	return count > 0, err
}

// All returns every catalog entry.
func (r *FoodItemRepository) All() ([]models.FoodItem, error) {
	var items []models.FoodItem
	err := r.q().Model(&models.FoodItem{}).Order("id").Get(&items)
	return items, err
}

// Available returns the items on sale today, cache-through with a short TTL.
func (r *FoodItemRepository) Available() ([]models.FoodItem, error) {
	var items []models.FoodItem
	err := r.q().Model(&models.FoodItem{}).
		Where("available_today = ?", true).
		Cache(AvailableMenuCacheKey, time.Minute, &items)
	return items, err
}

// DonatedUnreceived returns items routed to the donation pipeline that no
// NGO has collected yet.
func (r *FoodItemRepository) DonatedUnreceived() ([]models.FoodItem, error) {
	var items []models.FoodItem
	err := r.q().Model(&models.FoodItem{}).
		Where("donated_at IS NOT NULL AND received_by_ngo_at IS NULL AND available_today = ?", false).
		Order("donated_at").
		Get(&items)
	return items, err
}

// Create persists a new food item.
func (r *FoodItemRepository) Create(item *models.FoodItem) error {
	return r.q().Create(item)
}

// Save persists changes to an existing food item.
func (r *FoodItemRepository) Save(item *models.FoodItem) error {
	return r.q().Save(item)
}

// Delete removes a food item record permanently. A soft delete would keep
// the row in the unique name index and block the name forever.
func (r *FoodItemRepository) Delete(item *models.FoodItem) error {
	return r.q().Unscoped().Delete(item)
}

// ClearAvailability ends the sale day: every undonated item is taken off
// sale. Donated items keep available_today=false by invariant already.
func (r *FoodItemRepository) ClearAvailability() error {
	return r.q().Model(&models.FoodItem{}).
		Where("available_today = ?", true).
		Updates(map[string]interface{}{"available_today": false})
}
