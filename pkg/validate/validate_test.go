package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registerInput struct {
	Username string `json:"username" validate:"required,alpha_dash,min=2,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Role     string `json:"role"     validate:"nullable,in=STUDENT,CANTEEN_MANAGER,ADMIN,NGO"`
	Quantity int    `json:"quantity" validate:"nullable,gte=1"`
}

func TestStructValid(t *testing.T) {
	errs := Struct(&registerInput{
		Username: "ravi_k",
		Email:    "ravi@example.com",
		Role:     "NGO",
		Quantity: 2,
	})
	assert.False(t, HasErrors(errs))
}

func TestStructErrors(t *testing.T) {
	errs := Struct(&registerInput{
		Username: "r",
		Email:    "not-an-email",
		Role:     "SUPERUSER",
	})
	assert.True(t, HasErrors(errs))
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "role")
}

func TestNullableSkipsEmpty(t *testing.T) {
	errs := Struct(&registerInput{Username: "ravi", Email: "ravi@example.com"})
	assert.False(t, HasErrors(errs))
}

func TestInRuleKeepsCommaValues(t *testing.T) {
	rules := splitRules("nullable,in=STUDENT,CANTEEN_MANAGER,ADMIN,NGO")
	assert.Equal(t, []string{"nullable", "in=STUDENT,CANTEEN_MANAGER,ADMIN,NGO"}, rules)
}
