package model

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleAdmin    = "admin"
)

type User struct {
	ID       int
	Name     string
	Email    string
	Password string
	Role     string
	Phone    string
	Avatar   string
	Active   bool
}

type UserClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
