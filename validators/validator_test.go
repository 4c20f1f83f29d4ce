package validators

import (
	"testing"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	apperrors "github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestCustomValidator(t *testing.T) {
	v := NewValidator()
	huge := "huge"
	small := models.FontSizeSmall

	tests := []struct {
		name    string
		input   interface{}
		wantErr bool
		field   string
	}{
		{name: "valid register", input: models.RegisterRequest{Username: "emily", Email: "emily@plantly.com", Password: "password1"}},
		{name: "bad email", input: models.RegisterRequest{Username: "emily", Email: "nope", Password: "password1"}, wantErr: true, field: "Email"},
		{name: "short password", input: models.RegisterRequest{Username: "emily", Email: "emily@plantly.com", Password: "x"}, wantErr: true, field: "Password"},
		{name: "missing username", input: models.ConnectionRequest{}, wantErr: true, field: "Username"},
		{name: "font size allowed", input: models.PolicyUpdate{FontSize: &small}},
		{name: "font size rejected", input: models.PolicyUpdate{FontSize: &huge}, wantErr: true, field: "FontSize"},
		{name: "empty policy update", input: models.PolicyUpdate{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperrors.Is(err, apperrors.KindValidation))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
