package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductBody(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]interface{}
		wantErr bool
	}{
		{
			name: "nested rules object passes",
			raw:  map[string]interface{}{"rules": map[string]interface{}{"min_credit_score": 700.0}},
		},
		{
			name: "operator typos inside rules are allowed through",
			raw:  map[string]interface{}{"rules": map[string]interface{}{"min_credit_score": "seven hundred"}},
		},
		{
			name:    "rules as a string is structurally impossible",
			raw:     map[string]interface{}{"rules": "min_credit_score > 700"},
			wantErr: true,
		},
		{
			name:    "required documents must be an array",
			raw:     map[string]interface{}{"required_documents": "bank_statements"},
			wantErr: true,
		},
		{
			name: "empty body passes",
			raw:  map[string]interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ProductBody(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLenderBody(t *testing.T) {
	assert.NoError(t, LenderBody(map[string]interface{}{"company_name": "Maple Capital"}))
	assert.Error(t, LenderBody(map[string]interface{}{"loan_range": "10000-50000"}))
}
