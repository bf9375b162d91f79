package model

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	maxUserNameLength     = 100
	maxCategoryNameLength = 100
	maxProductNameLength  = 200
	minPasswordLength     = 6
	maxStock              = math.MaxInt32
)

// maxPrice is the exclusive upper bound of a NUMERIC(12,2) column.
var maxPrice = decimal.New(1, 10)

var validate = validator.New()

// fieldErrors accumulates field failures for one input shape.
type fieldErrors []FieldError

func (f *fieldErrors) add(field, message string) {
	*f = append(*f, FieldError{Field: field, Message: message})
}

func (f fieldErrors) result() []FieldError {
	if len(f) == 0 {
		return nil
	}
	return f
}

func (f *fieldErrors) requireText(field, value string, maxLen int) {
	switch {
	case strings.TrimSpace(value) == "":
		f.add(field, field+" is required")
	case utf8.RuneCountInString(value) > maxLen:
		f.add(field, field+" must be at most "+strconv.Itoa(maxLen)+" characters")
	default:
		f.checkText(field, &value)
	}
}

// checkText rejects text the store cannot hold.
func (f *fieldErrors) checkText(field string, value *string) {
	if value != nil && strings.ContainsRune(*value, 0) {
		f.add(field, field+" must not contain NUL characters")
	}
}

func (f *fieldErrors) checkStock(stock *int) {
	switch {
	case stock == nil:
	case *stock < 0:
		f.add("stock", "stock must not be negative")
	case *stock > maxStock:
		f.add("stock", "stock must be at most "+strconv.Itoa(maxStock))
	}
}

func (f *fieldErrors) checkPrice(price decimal.Decimal) {
	switch {
	case price.IsNegative():
		f.add("price", "price must not be negative")
	case price.GreaterThanOrEqual(maxPrice):
		f.add("price", "price is too large")
	}
}

func (f *fieldErrors) checkEmail(value string) {
	if strings.TrimSpace(value) == "" {
		f.add("email", "email is required")
		return
	}
	if err := validate.Var(value, "email"); err != nil {
		f.add("email", "email must be a valid email address")
	}
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate reports every invalid field.
func (r *LoginRequest) Validate() []FieldError {
	var errs fieldErrors
	errs.checkEmail(r.Email)
	if r.Password == "" {
		errs.add("password", "password is required")
	}
	return errs.result()
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Validate reports every invalid field.
func (r *RegisterRequest) Validate() []FieldError {
	var errs fieldErrors
	errs.checkEmail(r.Email)
	switch {
	case r.Password == "":
		errs.add("password", "password is required")
	case utf8.RuneCountInString(r.Password) < minPasswordLength:
		errs.add("password", "password must be at least "+strconv.Itoa(minPasswordLength)+" characters")
	}
	errs.requireText("name", r.Name, maxUserNameLength)
	return errs.result()
}

// CreateCategoryRequest is the body of POST /categories.
type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// Validate reports every invalid field.
func (r *CreateCategoryRequest) Validate() []FieldError {
	var errs fieldErrors
	errs.requireText("name", r.Name, maxCategoryNameLength)
	errs.checkText("description", r.Description)
	return errs.result()
}

// UpdateCategoryRequest is the body of PATCH /categories/{id}.
// Nil fields are left unchanged; an explicit null description clears it.
type UpdateCategoryRequest struct {
	Name        *string          `json:"name"`
	Description Nullable[string] `json:"description"`
	IsActive    *bool            `json:"isActive"`
}

// Validate reports every invalid field.
func (r *UpdateCategoryRequest) Validate() []FieldError {
	var errs fieldErrors
	if r.Name != nil {
		errs.requireText("name", *r.Name, maxCategoryNameLength)
	}
	errs.checkText("description", r.Description.Value)
	return errs.result()
}

// CreateProductRequest is the body of POST /products.
type CreateProductRequest struct {
	CategoryID  int64   `json:"categoryId"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       *Amount `json:"price"`
	Stock       *int    `json:"stock"`
}

// Validate reports every invalid field.
func (r *CreateProductRequest) Validate() []FieldError {
	var errs fieldErrors
	if r.CategoryID < 1 {
		errs.add("categoryId", "categoryId is required and must be a positive integer")
	}
	errs.requireText("name", r.Name, maxProductNameLength)
	errs.checkText("description", r.Description)
	if r.Price == nil {
		errs.add("price", "price is required")
	} else {
		errs.checkPrice(r.Price.Decimal)
	}
	errs.checkStock(r.Stock)
	return errs.result()
}

// UpdateProductRequest is the body of PATCH /products/{id}.
// Nil fields are left unchanged; an explicit null description clears it.
type UpdateProductRequest struct {
	CategoryID  *int64           `json:"categoryId"`
	Name        *string          `json:"name"`
	Description Nullable[string] `json:"description"`
	Price       *Amount          `json:"price"`
	Stock       *int             `json:"stock"`
	IsActive    *bool            `json:"isActive"`
}

// Validate reports every invalid field.
func (r *UpdateProductRequest) Validate() []FieldError {
	var errs fieldErrors
	if r.CategoryID != nil && *r.CategoryID < 1 {
		errs.add("categoryId", "categoryId must be a positive integer")
	}
	if r.Name != nil {
		errs.requireText("name", *r.Name, maxProductNameLength)
	}
	errs.checkText("description", r.Description.Value)
	if r.Price != nil {
		errs.checkPrice(r.Price.Decimal)
	}
	errs.checkStock(r.Stock)
	return errs.result()
}
