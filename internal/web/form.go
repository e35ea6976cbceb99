package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"productcatalog/internal/client"
	catalogvalidator "productcatalog/internal/validator"
)

// ProductForm holds the raw values of the create and edit forms so they can
// be redisplayed as typed.
type ProductForm struct {
	ProductName  string
	CategoryID   string
	UnitsInStock string
	UnitPrice    string
}

// productInput mirrors the API's product request rules.
type productInput struct {
	ProductName  string           `json:"productName" validate:"required,min=2,max=40"`
	CategoryID   *uint            `json:"categoryId" validate:"required,min=1"`
	UnitsInStock *int             `json:"unitsInStock" validate:"required,min=0,max=2000000"`
	UnitPrice    *decimal.Decimal `json:"unitPrice" validate:"required,decimal_min=0,decimal_max=2000000,price_scale"`
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	catalogvalidator.Configure(v)
	return v
}

func formFromProduct(p *client.Product) ProductForm {
	return ProductForm{
		ProductName:  p.ProductName,
		CategoryID:   strconv.FormatUint(uint64(p.CategoryID), 10),
		UnitsInStock: strconv.Itoa(p.UnitsInStock),
		UnitPrice:    p.UnitPrice.StringFixed(2),
	}
}

func parseProductForm(r *http.Request) ProductForm {
	return ProductForm{
		ProductName:  strings.TrimSpace(r.PostFormValue("productName")),
		CategoryID:   strings.TrimSpace(r.PostFormValue("categoryId")),
		UnitsInStock: strings.TrimSpace(r.PostFormValue("unitsInStock")),
		UnitPrice:    strings.TrimSpace(r.PostFormValue("unitPrice")),
	}
}

// Validate converts the form into an API request. The returned map is keyed
// by form field and is empty when the form is valid.
func (f ProductForm) Validate() (client.ProductRequest, map[string]string) {
	fieldErrors := map[string]string{}
	in := productInput{ProductName: f.ProductName}

	if f.CategoryID != "" {
		if id, err := strconv.ParseUint(f.CategoryID, 10, 32); err == nil {
			v := uint(id)
			in.CategoryID = &v
		} else {
			fieldErrors["categoryId"] = "Category must be selected"
		}
	}
	if f.UnitsInStock != "" {
		if n, err := strconv.Atoi(f.UnitsInStock); err == nil {
			in.UnitsInStock = &n
		} else {
			fieldErrors["unitsInStock"] = "Units in stock must be a whole number"
		}
	}
	if f.UnitPrice != "" {
		if d, err := decimal.NewFromString(f.UnitPrice); err == nil {
			in.UnitPrice = &d
		} else {
			fieldErrors["unitPrice"] = "Unit price must be a number"
		}
	}

	if err := formValidator.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if _, seen := fieldErrors[fe.Field()]; !seen {
					fieldErrors[fe.Field()] = fieldMessage(fe)
				}
			}
		}
	}

	if len(fieldErrors) > 0 {
		return client.ProductRequest{}, fieldErrors
	}
	return client.ProductRequest{
		ProductName:  in.ProductName,
		CategoryID:   *in.CategoryID,
		UnitsInStock: *in.UnitsInStock,
		UnitPrice:    *in.UnitPrice,
	}, fieldErrors
}

var fieldLabels = map[string]string{
	"productName":  "Name",
	"categoryId":   "Category",
	"unitsInStock": "Units in stock",
	"unitPrice":    "Unit price",
}

func fieldMessage(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min", "decimal_min":
		if fe.Field() == "productName" {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max", "decimal_max":
		if fe.Field() == "productName" {
			return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "price_scale":
		return label + " must have at most 2 decimal places"
	}
	return label + " is invalid"
}
