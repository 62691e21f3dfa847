package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jeenmata/impex/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Email     string `json:"email" binding:"omitempty,email"`
}

func TestHandleValidationError(t *testing.T) {
	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var req cartItemInput
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("per-field details use json names", func(t *testing.T) {
		w := post(`{"quantity": 0, "email": "nope"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		info := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeValidation, info.Code)
		assert.Equal(t, "Request validation failed", info.Message)
		assert.NotEmpty(t, info.RequestID)

		fields := map[string]string{}
		for _, d := range info.Details {
			fields[d.Field] = d.Message
		}
		assert.Equal(t, "This field is required", fields["product_id"])
		assert.Equal(t, "This field is required", fields["quantity"])
		assert.Equal(t, "Invalid email format", fields["email"])
	})

	t.Run("malformed json", func(t *testing.T) {
		w := post(`{"product_id":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidJSON, decodeError(t, w).Code)
	})

	t.Run("valid body", func(t *testing.T) {
		w := post(`{"product_id": "prod_001", "quantity": 2}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetValidationMessage(t *testing.T) {
	type input struct {
		Name     string `validate:"min=3"`
		Note     string `validate:"max=5"`
		Status   string `validate:"oneof=Submitted Cancelled"`
		Quantity int    `validate:"gte=1"`
		Website  string `validate:"url"`
		Phone    string `validate:"e164"`
	}

	v := validator.New()
	err := v.Struct(input{Name: "ab", Note: "too long", Status: "Lost", Website: "nope", Phone: "9800"})
	require.Error(t, err)

	got := map[string]string{}
	for _, fe := range err.(validator.ValidationErrors) {
		got[fe.Field()] = getValidationMessage(fe)
	}

	assert.Equal(t, "Must be at least 3 characters", got["Name"])
	assert.Equal(t, "Must be at most 5 characters", got["Note"])
	assert.Equal(t, "Must be one of: Submitted Cancelled", got["Status"])
	assert.Equal(t, "Must be greater than or equal to 1", got["Quantity"])
	assert.Equal(t, "Invalid URL format", got["Website"])
	assert.Equal(t, "Must be a phone number in international format", got["Phone"])
}
