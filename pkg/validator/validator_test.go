package validator_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/pkg/validator"
)

func fields(errs []validator.FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateStruct_RegisterValido(t *testing.T) {
	errs := validator.ValidateStruct(dto.RegisterRequest{Username: "alice", Password: "secret1", Email: "alice@x.com"})
	assert.Nil(t, errs)
}

func TestValidateStruct_RegisterInvalido(t *testing.T) {
	errs := validator.ValidateStruct(dto.RegisterRequest{Username: "al", Password: "123", Email: "no-es-email"})
	require.Len(t, errs, 3)
	assert.ElementsMatch(t, []string{"username", "password", "email"}, fields(errs))
}

func TestValidateStruct_PrecioDebeSerPositivo(t *testing.T) {
	in := dto.CreateProductRequest{Name: "Mate", Price: decimal.Zero, SellerID: 1}
	errs := validator.ValidateStruct(in)
	require.Len(t, errs, 1)
	assert.Equal(t, "price", errs[0].Field)
	assert.Equal(t, "gt", errs[0].Tag)

	in.Price = decimal.RequireFromString("-1.50")
	assert.Len(t, validator.ValidateStruct(in), 1)

	in.Price = decimal.RequireFromString("10.50")
	assert.Nil(t, validator.ValidateStruct(in))
}

func TestValidateStruct_LimitesDeProducto(t *testing.T) {
	long := string(make([]byte, 51))
	neg := -1
	in := dto.CreateProductRequest{
		Name:     "M",
		Price:    decimal.NewFromInt(1),
		SellerID: 0,
		Category: &long,
		Stock:    &neg,
	}
	errs := validator.ValidateStruct(in)
	assert.ElementsMatch(t, []string{"name", "seller_id", "category", "stock"}, fields(errs))
}

func TestValidateStruct_Vendedor(t *testing.T) {
	assert.Nil(t, validator.ValidateStruct(dto.SellerRequest{Name: "Bob", Email: "bob@x.com"}))

	errs := validator.ValidateStruct(dto.SellerRequest{Name: "B", Email: ""})
	assert.ElementsMatch(t, []string{"name", "email"}, fields(errs))
}

func TestValidateStruct_PasswordLimitaBytesNoRunas(t *testing.T) {
	in := dto.RegisterRequest{Username: "alice", Password: strings.Repeat("á", 40), Email: "alice@x.com"}
	errs := validator.ValidateStruct(in)
	require.Len(t, errs, 1)
	assert.Equal(t, "password", errs[0].Field)
	assert.Equal(t, "maxbytes", errs[0].Tag)
	assert.Equal(t, "password no puede exceder 72 bytes", errs[0].Message)

	in.Password = strings.Repeat("á", 36)
	assert.Nil(t, validator.ValidateStruct(in))
}

func TestValidateStruct_PrecioConMasDeDosDecimales(t *testing.T) {
	in := dto.UpdateProductRequest{Name: "Tornillo", Price: decimal.RequireFromString("0.001")}
	errs := validator.ValidateStruct(in)
	require.Len(t, errs, 1)
	assert.Equal(t, "price", errs[0].Field)
	assert.Equal(t, "decimals", errs[0].Tag)
	assert.Equal(t, "price admite como máximo 2 decimales", errs[0].Message)

	in.Price = decimal.RequireFromString("1.239")
	assert.Len(t, validator.ValidateStruct(in), 1)

	// Ceros a la derecha no cuentan.
	in.Price = decimal.RequireFromString("1.230")
	assert.Nil(t, validator.ValidateStruct(&in))
}
