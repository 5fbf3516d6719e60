package validator

import (
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testInput struct {
	Title     string `json:"title" validate:"required,min=2" errorMsg:"Title must be at least 2 characters long."`
	Password  string `json:"password" validate:"required,min=8,strongpassword"`
	Password2 string `json:"password2" validate:"required,eqfield=Password" errorMsg:"Password fields didn't match."`
}

func newTestValidator(t *testing.T) *govalidator.Validate {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	require.NoError(t, v.RegisterValidation("strongpassword", ValidatePasswordStrength))
	return v
}

func TestValidateStructOk(t *testing.T) {
	v := newTestValidator(t)
	errs := ValidateStruct(v, testInput{Title: "Heat", Password: "s3cret-pass", Password2: "s3cret-pass"})
	assert.Nil(t, errs)
}

func TestValidateStructFieldKeys(t *testing.T) {
	v := newTestValidator(t)
	errs := ValidateStruct(v, testInput{Title: "H", Password: "s3cret-pass", Password2: "other"})
	require.NotNil(t, errs)
	assert.Equal(t, "Title must be at least 2 characters long.", errs["title"])
	assert.Equal(t, "Password fields didn't match.", errs["password2"])
	assert.NotContains(t, errs, "password")
}

func TestPasswordStrength(t *testing.T) {
	v := newTestValidator(t)
	errs := ValidateStruct(v, testInput{Title: "Heat", Password: "12345678", Password2: "12345678"})
	require.NotNil(t, errs)
	assert.Equal(t, "Password cannot be entirely numeric", errs["password"])

	errs = ValidateStruct(v, testInput{Title: "Heat", Password: "1234567a", Password2: "1234567a"})
	assert.Nil(t, errs)
}
