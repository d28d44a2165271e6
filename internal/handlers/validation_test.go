package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

// These requests are rejected before any query runs, so the handlers are
// built without a database.

func TestServiceCreateRejectsOutOfRangeValues(t *testing.T) {
	r := gin.New()
	r.POST("/admin/services", middleware.AuthMiddleware(secret), NewServiceHandler(nil, nil).Create)

	cases := []struct {
		name string
		body gin.H
	}{
		{"too short", gin.H{"name": "Stretch", "durationMinutes": 14, "price": "10"}},
		{"too long", gin.H{"name": "Marathon", "durationMinutes": 241, "price": "10"}},
		{"negative price", gin.H{"name": "PT", "durationMinutes": 30, "price": "-0.01"}},
		{"price above cap", gin.H{"name": "PT", "durationMinutes": 30, "price": "10000.01"}},
		{"missing name", gin.H{"durationMinutes": 30, "price": "10"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(t, r, http.MethodPost, "/admin/services", models.RoleAdmin, 1, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, CodeInvalidRequest, code(t, w))
		})
	}
}

func TestWindowCreateRejectsMalformedRange(t *testing.T) {
	r := gin.New()
	r.POST("/me/availability", middleware.AuthMiddleware(secret), NewAvailabilityHandler(nil, nil).Create)

	cases := []struct {
		name string
		body gin.H
		want string
	}{
		{"start equals end", gin.H{"date": "2030-01-07", "startTime": "10:00", "endTime": "10:00"}, domain.CodeInvalidTime},
		{"start after end", gin.H{"date": "2030-01-07", "startTime": "11:00", "endTime": "10:00"}, domain.CodeInvalidTime},
		{"unpadded time", gin.H{"date": "2030-01-07", "startTime": "9:00", "endTime": "10:00"}, domain.CodeInvalidTime},
		{"bad date", gin.H{"date": "07/01/2030", "startTime": "09:00", "endTime": "10:00"}, CodeInvalidDate},
		{"missing end", gin.H{"date": "2030-01-07", "startTime": "09:00"}, CodeInvalidRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(t, r, http.MethodPost, "/me/availability", models.RoleTrainer, 500, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.want, code(t, w))
		})
	}
}

func TestUploadPhotoWithoutStorage(t *testing.T) {
	r := gin.New()
	r.PUT("/admin/trainers/:id/photo", middleware.AuthMiddleware(secret), NewTrainerHandler(nil, nil, nil).UploadPhoto)

	w := serve(t, r, http.MethodPut, "/admin/trainers/1/photo", models.RoleAdmin, 1, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, CodeStorageDisabled, code(t, w))
}
