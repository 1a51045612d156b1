package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"backend/models"
	"backend/utils"
)

// In-memory implementations of the store interfaces. They back the
// service tests and small embedded deployments; the gorm
// implementations are the production path.

type MemoryCatalogRepository struct {
	mu           sync.RWMutex
	restaurants  map[uint]models.Restaurant
	dishes       map[uint]models.Dish
	offers       map[uint][]models.DeliveryOffer
	nextID       uint
	lastModified time.Time
}

func NewMemoryCatalogRepository() *MemoryCatalogRepository {
	return &MemoryCatalogRepository{
		restaurants: make(map[uint]models.Restaurant),
		dishes:      make(map[uint]models.Dish),
		offers:      make(map[uint][]models.DeliveryOffer),
		nextID:      1,
	}
}

func (r *MemoryCatalogRepository) AddRestaurant(name string, lat, lng float64) uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	rest := models.Restaurant{Name: name, Latitude: lat, Longitude: lng}
	rest.ID = id
	r.restaurants[id] = rest
	r.lastModified = time.Now()
	return id
}

func (r *MemoryCatalogRepository) AddDish(name string, restaurantID uint, calories, protein, carbs, fats float64) uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	dish := models.Dish{
		Name:         name,
		RestaurantID: restaurantID,
		Calories:     calories,
		ProteinG:     protein,
		CarbsG:       carbs,
		FatsG:        fats,
	}
	dish.ID = id
	dish.Restaurant = r.restaurants[restaurantID]
	r.dishes[id] = dish
	r.lastModified = time.Now()
	return id
}

func (r *MemoryCatalogRepository) AddOffer(dishID uint, platform string, price float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	offer := models.DeliveryOffer{DishID: dishID, Platform: platform, Price: price}
	offer.ID = r.nextID
	r.nextID++
	r.offers[dishID] = append(r.offers[dishID], offer)
	r.lastModified = time.Now()
}

// RemoveDish exists so tests can mutate the catalog and exercise cache
// invalidation.
func (r *MemoryCatalogRepository) RemoveDish(id uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.dishes, id)
	r.lastModified = time.Now()
}

func (r *MemoryCatalogRepository) GetDish(_ context.Context, id uint) (*models.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dish, ok := r.dishes[id]
	if !ok {
		return nil, nil
	}
	return &dish, nil
}

func (r *MemoryCatalogRepository) GetRestaurant(_ context.Context, id uint) (*models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rest, ok := r.restaurants[id]
	if !ok {
		return nil, nil
	}
	return &rest, nil
}

func (r *MemoryCatalogRepository) DishesWithinDistance(_ context.Context, lat, lng, km float64) ([]models.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Dish
	for _, d := range r.dishes {
		dist, err := utils.Haversine(lat, lng, d.Restaurant.Latitude, d.Restaurant.Longitude)
		if err != nil {
			return nil, err
		}
		if dist <= km {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryCatalogRepository) ListOffers(_ context.Context, dishID uint) ([]models.DeliveryOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	offers := make([]models.DeliveryOffer, len(r.offers[dishID]))
	copy(offers, r.offers[dishID])
	sort.Slice(offers, func(i, j int) bool { return offers[i].Platform < offers[j].Platform })
	return offers, nil
}

func (r *MemoryCatalogRepository) FindDishByName(_ context.Context, name string) (*models.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var exact, fuzzy *models.Dish
	ids := make([]uint, 0, len(r.dishes))
	for id := range r.dishes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		d := r.dishes[id]
		if d.Name == name && exact == nil {
			exact = &d
		}
		if strings.Contains(d.Name, name) && fuzzy == nil {
			fuzzy = &d
		}
	}
	if exact != nil {
		return exact, nil
	}
	return fuzzy, nil
}

func (r *MemoryCatalogRepository) LastModified(_ context.Context) (time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastModified, nil
}

type MemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[uint]models.User
	nextID uint
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uint]models.User), nextID: 1}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) GetUser(_ context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *MemoryUserRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) SetCalorieTarget(_ context.Context, id uint, target int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil
	}
	user.CalorieTarget = target
	r.users[id] = user
	return nil
}

type MemoryLogRepository struct {
	mu      sync.RWMutex
	entries []models.ConsumptionEntry
	nextID  uint
}

func NewMemoryLogRepository() *MemoryLogRepository {
	return &MemoryLogRepository{nextID: 1}
}

func (r *MemoryLogRepository) Append(_ context.Context, entry *models.ConsumptionEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = r.nextID
	r.nextID++
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *MemoryLogRepository) ListByDate(_ context.Context, userID uint, day time.Time) ([]models.ConsumptionEntry, error) {
	start := dayStart(day)
	end := start.Add(24 * time.Hour)

	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.ConsumptionEntry
	for _, e := range r.entries {
		if e.UserID == userID && !e.LoggedAt.Before(start) && e.LoggedAt.Before(end) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LoggedAt.Before(out[j].LoggedAt) })
	return out, nil
}

type recKey struct {
	dishID uint
	userID uint
	maxKm  float64
}

type MemoryRecommendationRepository struct {
	mu      sync.RWMutex
	records map[recKey]models.RecommendationRecord
}

func NewMemoryRecommendationRepository() *MemoryRecommendationRepository {
	return &MemoryRecommendationRepository{records: make(map[recKey]models.RecommendationRecord)}
}

func (r *MemoryRecommendationRepository) Get(_ context.Context, dishID, userID uint, maxKm float64) (*models.RecommendationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[recKey{dishID, userID, maxKm}]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *MemoryRecommendationRepository) Put(_ context.Context, record *models.RecommendationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[recKey{record.DishID, record.UserID, record.MaxDistanceKm}] = *record
	return nil
}
