// internal/domain/user/entity.go
package user

import (
	"github.com/shopspring/decimal"
)

// RegisterForm is what the registration form collects
type RegisterForm struct {
	Username        string `json:"username" validate:"required,min=6"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

// LoginForm is what the login form collects
type LoginForm struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Address is a saved shipping address
type Address struct {
	ID      string `json:"_id"`
	Address string `json:"address"`
}

// credentialsRequest is the body of POST /auth/register and POST /auth/login
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the body of a successful POST /auth/login
type loginResponse struct {
	Success  bool            `json:"success"`
	Token    string          `json:"token"`
	Username string          `json:"username"`
	Balance  decimal.Decimal `json:"balance"`
}

// addressRequest is the body of POST /user/addresses
type addressRequest struct {
	Address string `json:"address" validate:"required"`
}
