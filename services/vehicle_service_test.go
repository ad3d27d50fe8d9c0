package services

import (
	"errors"
	"testing"

	"limo-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleCRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := NewVehicleService(db)

	created, err := svc.Create(models.Vehicle{
		Name:        "Mercedes-Benz S-Class",
		Type:        "luxury-sedan",
		Capacity:    3,
		PricePerDay: 450,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "luxury-sedan", got.Type)

	updated, err := svc.Update(created.ID, map[string]interface{}{"price_per_day": 500.0})
	require.NoError(t, err)
	assert.Equal(t, 500.0, updated.PricePerDay)

	require.NoError(t, svc.Delete(created.ID))
	_, err = svc.GetByID(created.ID)
	assert.True(t, errors.Is(err, ErrVehicleNotFound))
}

func TestVehicleGetByType(t *testing.T) {
	db := setupTestDB(t)
	svc := NewVehicleService(db)

	_, err := svc.Create(models.Vehicle{Name: "Escalade", Type: "luxury-suv", Capacity: 6, PricePerDay: 520})
	require.NoError(t, err)
	_, err = svc.Create(models.Vehicle{Name: "S-Class", Type: "luxury-sedan", Capacity: 3, PricePerDay: 450})
	require.NoError(t, err)

	suvs, err := svc.GetByType("luxury-suv")
	require.NoError(t, err)
	require.Len(t, suvs, 1)
	assert.Equal(t, "Escalade", suvs[0].Name)
}

func TestVehicleUpdateIgnoresProtectedColumns(t *testing.T) {
	db := setupTestDB(t)
	svc := NewVehicleService(db)

	created, err := svc.Create(models.Vehicle{Name: "Sprinter", Type: "executive-van", Capacity: 12, PricePerDay: 600})
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, map[string]interface{}{
		"id":       999,
		"capacity": 10,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 10, updated.Capacity)
}

func TestVehicleDeleteMissing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewVehicleService(db)

	err := svc.Delete(12345)
	assert.True(t, errors.Is(err, ErrVehicleNotFound))
}
