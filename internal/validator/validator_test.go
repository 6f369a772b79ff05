package validator

import (
	"net/http"
	"testing"

	"github.com/kargofit/crm/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineReq struct {
	ProductID *int64 `json:"product_id" validate:"required"`
}

type sampleReq struct {
	Brand string    `json:"brand" validate:"required"`
	Fee   *float64  `json:"fee"`
	Lines []lineReq `json:"lines" validate:"required,dive"`
}

func TestValidate(t *testing.T) {
	v := New()
	id := int64(3)

	require.NoError(t, v.Validate(&sampleReq{Brand: "Acme", Lines: []lineReq{{ProductID: &id}}}))

	tests := []struct {
		name string
		req  sampleReq
		want string
	}{
		{"missing brand", sampleReq{Lines: []lineReq{}}, "brand is required"},
		{"missing lines", sampleReq{Brand: "Acme"}, "lines is required"},
		{"nested field", sampleReq{Brand: "Acme", Lines: []lineReq{{ProductID: &id}, {}}}, "lines[1].product_id is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			require.Error(t, err)
			he, ok := usecase.AsHTTPError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Status)
			assert.Equal(t, tt.want, he.Message)
		})
	}
}
