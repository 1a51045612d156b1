package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFindAlternativePrefersClosestCalorieMatch(t *testing.T) {
	f := newFixture()
	nearby := f.catalog.AddRestaurant("Corner Kitchen", homeLat+0.005, homeLng)

	source := f.catalog.AddDish("Cheese Kottu", nearby, 850, 30, 90, 40)
	f.catalog.AddDish("Veggie Kottu", nearby, 620, 18, 85, 20)
	best := f.catalog.AddDish("Chicken Kottu", nearby, 800, 35, 80, 30)
	f.catalog.AddDish("Garden Salad", nearby, 150, 5, 12, 8)

	userID := f.addUserAt("amal", homeLat, homeLng)
	svc := NewRecommendationService(f.catalog, f.users, f.recs)

	rec, err := svc.FindAlternative(context.Background(), source, userID, 10)
	require.NoError(t, err)
	require.True(t, rec.Found)
	require.Equal(t, best, rec.AltDishID)
	require.Equal(t, "Chicken Kottu", rec.AltDishName)
	require.Equal(t, "Corner Kitchen", rec.AltRestaurant)
	require.Equal(t, 800.0, rec.AltCalories)
	require.Equal(t, 50.0, rec.CalorieDiff)
}

func TestFindAlternativeNeverReturnsRicherDish(t *testing.T) {
	f := newFixture()
	rest := f.catalog.AddRestaurant("Corner Kitchen", homeLat, homeLng)

	// The 860 kcal dish is the nearest by |diff| but richer than the
	// source, so the 600 kcal one must win.
	source := f.catalog.AddDish("Rice and Curry", rest, 850, 25, 100, 30)
	f.catalog.AddDish("Lamprais", rest, 860, 28, 95, 35)
	lighter := f.catalog.AddDish("String Hoppers", rest, 600, 15, 90, 12)

	userID := f.addUserAt("amal", homeLat, homeLng)
	svc := NewRecommendationService(f.catalog, f.users, f.recs)

	rec, err := svc.FindAlternative(context.Background(), source, userID, 10)
	require.NoError(t, err)
	require.True(t, rec.Found)
	require.Equal(t, lighter, rec.AltDishID)
	require.LessOrEqual(t, rec.AltCalories, 850.0)
	require.GreaterOrEqual(t, rec.CalorieDiff, 0.0)
}

func TestFindAlternativeExcludesSourceDish(t *testing.T) {
	f := newFixture()
	rest := f.catalog.AddRestaurant("Corner Kitchen", homeLat, homeLng)
	source := f.catalog.AddDish("Cheese Kottu", rest, 850, 30, 90, 40)

	userID := f.addUserAt("amal", homeLat, homeLng)
	svc := NewRecommendationService(f.catalog, f.users, f.recs)

	// The only dish in range is the source itself.
	rec, err := svc.FindAlternative(context.Background(), source, userID, 10)
	require.NoError(t, err)
	require.False(t, rec.Found)
}

func TestFindAlternativeTieBreaksByDistanceThenID(t *testing.T) {
	f := newFixture()
	near := f.catalog.AddRestaurant("Near Spot", homeLat+0.001, homeLng)
	far := f.catalog.AddRestaurant("Far Spot", homeLat+0.05, homeLng)

	source := f.catalog.AddDish("Cheese Kottu", far, 850, 30, 90, 40)
	f.catalog.AddDish("Far Bowl", far, 700, 20, 60, 20)
	nearDish := f.catalog.AddDish("Near Bowl", near, 700, 22, 55, 22)

	userID := f.addUserAt("amal", homeLat, homeLng)
	svc := NewRecommendationService(f.catalog, f.users, f.recs)

	// Equal calorie gap: the closer restaurant's dish wins.
	rec, err := svc.FindAlternative(context.Background(), source, userID, 10)
	require.NoError(t, err)
	require.True(t, rec.Found)
	require.Equal(t, nearDish, rec.AltDishID)

	// Equal gap and equal distance: the lower dish ID wins.
	f2 := newFixture()
	rest := f2.catalog.AddRestaurant("Corner Kitchen", homeLat, homeLng)
	src2 := f2.catalog.AddDish("Cheese Kottu", rest, 850, 30, 90, 40)
	first := f2.catalog.AddDish("Bowl A", rest, 700, 20, 60, 20)
	f2.catalog.AddDish("Bowl B", rest, 700, 20, 60, 20)

	user2 := f2.addUserAt("amal", homeLat, homeLng)
	svc2 := NewRecommendationService(f2.catalog, f2.users, f2.recs)

	rec, err = svc2.FindAlternative(context.Background(), src2, user2, 10)
	require.NoError(t, err)
	require.True(t, rec.Found)
	require.Equal(t, first, rec.AltDishID)
}

func TestFindAlternativeRespectsRadius(t *testing.T) {
	f := newFixture()
	near := f.catalog.AddRestaurant("Near Spot", homeLat+0.001, homeLng)
	far := f.catalog.AddRestaurant("Far Spot", homeLat+0.5, homeLng) // ~55 km away

	source := f.catalog.AddDish("Cheese Kottu", near, 850, 30, 90, 40)
	f.catalog.AddDish("Perfect Match", far, 849, 30, 90, 40)

	userID := f.addUserAt("amal", homeLat, homeLng)
	svc := NewRecommendationService(f.catalog, f.users, f.recs)

	rec, err := svc.FindAlternative(context.Background(), source, userID, 10)
	require.NoError(t, err)
	require.False(t, rec.Found, "the only candidate is outside the radius")
}

func TestFindAlternativeZeroRadiusBoundary(t *testing.T) {
	f := newFixture()
	atHome := f.catalog.AddRestaurant("Home Cafe", homeLat, homeLng)
	nearby := f.catalog.AddRestaurant("Round the Corner", homeLat+0.001, homeLng)

	source := f.catalog.AddDish("Cheese Kottu", nearby, 850, 30, 90, 40)
	exact := f.catalog.AddDish("Home Bowl", atHome, 700, 20, 60, 20)
	f.catalog.AddDish("Corner Bowl", nearby, 800, 25, 70, 25)

	userID := f.addUserAt("amal", homeLat, homeLng)
	svc := NewRecommendationService(f.catalog, f.users, f.recs)

	// Radius zero admits only the restaurant at exactly the user's
	// coordinates.
	rec, err := svc.FindAlternative(context.Background(), source, userID, 0)
	require.NoError(t, err)
	require.True(t, rec.Found)
	require.Equal(t, exact, rec.AltDishID)
}

func TestFindAlternativeErrorKinds(t *testing.T) {
	f := newFixture()
	rest := f.catalog.AddRestaurant("Corner Kitchen", homeLat, homeLng)
	dish := f.catalog.AddDish("Cheese Kottu", rest, 850, 30, 90, 40)

	located := f.addUserAt("amal", homeLat, homeLng)
	nomad := f.addUserWithoutLocation("nimal")

	svc := NewRecommendationService(f.catalog, f.users, f.recs)
	ctx := context.Background()

	_, err := svc.FindAlternative(ctx, dish, located, -1)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.FindAlternative(ctx, 9999, located, 10)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.FindAlternative(ctx, dish, 9999, 10)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.FindAlternative(ctx, dish, nomad, 10)
	require.ErrorIs(t, err, ErrNoLocation)
}

func TestFindAlternativeCachesResult(t *testing.T) {
	f := newFixture()
	rest := f.catalog.AddRestaurant("Corner Kitchen", homeLat, homeLng)
	source := f.catalog.AddDish("Cheese Kottu", rest, 850, 30, 90, 40)
	f.catalog.AddDish("Chicken Kottu", rest, 800, 35, 80, 30)

	userID := f.addUserAt("amal", homeLat, homeLng)
	counting := &countingCatalog{CatalogRepository: f.catalog}
	svc := NewRecommendationService(counting, f.users, f.recs)
	ctx := context.Background()

	first, err := svc.FindAlternative(ctx, source, userID, 10)
	require.NoError(t, err)
	second, err := svc.FindAlternative(ctx, source, userID, 10)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.EqualValues(t, 1, counting.searches.Load(), "second call must reuse the cached record")

	// A different key is its own computation.
	_, err = svc.FindAlternative(ctx, source, userID, 20)
	require.NoError(t, err)
	require.EqualValues(t, 2, counting.searches.Load())
}

func TestFindAlternativeRecomputesAfterCatalogChange(t *testing.T) {
	f := newFixture()
	rest := f.catalog.AddRestaurant("Corner Kitchen", homeLat, homeLng)
	source := f.catalog.AddDish("Cheese Kottu", rest, 850, 30, 90, 40)
	f.catalog.AddDish("Chicken Kottu", rest, 700, 35, 80, 30)

	userID := f.addUserAt("amal", homeLat, homeLng)
	counting := &countingCatalog{CatalogRepository: f.catalog}
	svc := NewRecommendationService(counting, f.users, f.recs)
	ctx := context.Background()

	rec, err := svc.FindAlternative(ctx, source, userID, 10)
	require.NoError(t, err)
	require.Equal(t, 700.0, rec.AltCalories)

	// A new, closer calorie match invalidates the cached record.
	better := f.catalog.AddDish("Grilled Kottu", rest, 840, 32, 78, 28)

	rec, err = svc.FindAlternative(ctx, source, userID, 10)
	require.NoError(t, err)
	require.Equal(t, better, rec.AltDishID)
	require.EqualValues(t, 2, counting.searches.Load())
}

func TestFindAlternativeSingleFlight(t *testing.T) {
	f := newFixture()
	rest := f.catalog.AddRestaurant("Corner Kitchen", homeLat, homeLng)
	source := f.catalog.AddDish("Cheese Kottu", rest, 850, 30, 90, 40)
	f.catalog.AddDish("Chicken Kottu", rest, 800, 35, 80, 30)

	userID := f.addUserAt("amal", homeLat, homeLng)

	// The delay widens the window so every goroutine is in flight
	// before the leader finishes.
	counting := &countingCatalog{
		CatalogRepository: &slowCatalog{CatalogRepository: f.catalog, delay: 50 * time.Millisecond},
	}
	svc := NewRecommendationService(counting, f.users, f.recs)

	const n = 16
	results := make([]*Recommendation, n)
	errs := make([]error, n)

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer done.Done()
			start.Wait()
			results[i], errs[i] = svc.FindAlternative(context.Background(), source, userID, 10)
		}(i)
	}
	start.Done()
	done.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, results[0], results[i], "caller %d saw a different result", i)
	}
	require.EqualValues(t, 1, counting.searches.Load(), "all callers must share one search")
}

func TestFindAlternativeTimeoutReleasesWaiters(t *testing.T) {
	f := newFixture()
	rest := f.catalog.AddRestaurant("Corner Kitchen", homeLat, homeLng)
	source := f.catalog.AddDish("Cheese Kottu", rest, 850, 30, 90, 40)
	f.catalog.AddDish("Chicken Kottu", rest, 800, 35, 80, 30)

	userID := f.addUserAt("amal", homeLat, homeLng)

	stuck := &slowCatalog{CatalogRepository: f.catalog, delay: 500 * time.Millisecond}
	svc := NewRecommendationService(stuck, f.users, f.recs)
	svc.SetSearchTimeout(30 * time.Millisecond)

	const n = 4
	errs := make([]error, n)
	var done sync.WaitGroup
	done.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer done.Done()
			_, errs[i] = svc.FindAlternative(context.Background(), source, userID, 10)
		}(i)
	}
	done.Wait()

	for i := 0; i < n; i++ {
		require.ErrorIs(t, errs[i], ErrTimeout, "waiter %d must not block on a stuck leader", i)
	}
}
