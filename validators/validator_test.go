package validators

import (
	"testing"

	"github.com/sedp-portal/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestValidate_NewRegistration(t *testing.T) {
	v := NewValidator()

	ok := models.NewRegistration{
		FullName:          "Anjali Menon",
		MobileNumber:      "9447000000",
		Address:           "Main road, Aluva",
		PanchayathDetails: "Aluva",
		Category:          "farming",
	}
	assert.NoError(t, v.Validate(ok))

	missing := ok
	missing.FullName = ""
	err := v.Validate(missing)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "FullName failed required")

	badStatus := ok
	badStatus.Status = "archived"
	assert.Error(t, v.Validate(badStatus))
}

func TestValidate_StatusDecision(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(models.UpdateRegistrationStatusRequest{Status: models.RegistrationApproved, UniqueID: "SEDP-0001"}))
	assert.Error(t, v.Validate(models.UpdateRegistrationStatusRequest{Status: models.RegistrationPending}))
}

func TestValidate_NotificationTargetValue(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(models.NewNotification{Title: "Camp", Content: "Friday", TargetAudience: models.AudienceAll}))
	assert.Error(t, v.Validate(models.NewNotification{Title: "Camp", Content: "Friday", TargetAudience: models.AudienceCategory}))
	assert.NoError(t, v.Validate(models.NewNotification{Title: "Camp", Content: "Friday", TargetAudience: models.AudienceCategory, TargetValue: "farming"}))
	assert.Error(t, v.Validate(models.NewNotification{Title: "Camp", Content: "Friday", TargetAudience: "everyone"}))
}

func TestValidate_CategoryImageURL(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(models.UpdateCategoryImageRequest{ImageURL: "https://storage.googleapis.com/sedp/a.png"}))
	assert.Error(t, v.Validate(models.UpdateCategoryImageRequest{ImageURL: "not a url"}))
}
