package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type orderPayload struct {
	TotalAmount float64       `json:"total_amount" validate:"gte=0"`
	Items       []itemPayload `json:"items" validate:"required,dive"`
}

type itemPayload struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

func decodeBody(t *testing.T, body string, v interface{}) error {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return DecodeAndValidate(req, v)
}

func TestDecodeAndValidateAcceptsValidPayload(t *testing.T) {
	var payload orderPayload
	body := `{"total_amount": 10.5, "items": [{"product_id": "d9c8b5f0-4a4e-4d2b-9c1a-1234567890ab", "quantity": 2}]}`

	if err := decodeBody(t, body, &payload); err != nil {
		t.Fatalf("expected valid payload to pass, got %v", err)
	}
	if payload.TotalAmount != 10.5 || len(payload.Items) != 1 {
		t.Errorf("payload not decoded: %+v", payload)
	}
}

func TestDecodeAndValidateRejectsMalformedJSON(t *testing.T) {
	var payload orderPayload
	err := decodeBody(t, `{not json`, &payload)
	if err == nil {
		t.Fatal("expected decode error")
	}
	// Decode failures carry no field-level errors
	if formatted := FormatValidationErrors(err); len(formatted) != 0 {
		t.Errorf("decode error should not produce validation errors: %v", formatted)
	}
}

func TestDecodeAndValidateReportsFieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{
			name:      "zero quantity",
			body:      `{"total_amount": 1, "items": [{"product_id": "d9c8b5f0-4a4e-4d2b-9c1a-1234567890ab", "quantity": 0}]}`,
			wantField: "Quantity",
		},
		{
			name:      "bad product id",
			body:      `{"total_amount": 1, "items": [{"product_id": "nope", "quantity": 1}]}`,
			wantField: "ProductID",
		},
		{
			name:      "missing items",
			body:      `{"total_amount": 1}`,
			wantField: "Items",
		},
		{
			name:      "negative total",
			body:      `{"total_amount": -1, "items": [{"product_id": "d9c8b5f0-4a4e-4d2b-9c1a-1234567890ab", "quantity": 1}]}`,
			wantField: "TotalAmount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload orderPayload
			err := decodeBody(t, tt.body, &payload)
			if err == nil {
				t.Fatal("expected validation error")
			}

			formatted := FormatValidationErrors(err)
			if len(formatted) == 0 {
				t.Fatalf("expected field errors, got none for %v", err)
			}

			found := false
			for _, fieldErr := range formatted {
				if fieldErr.Field == tt.wantField {
					found = true
					if fieldErr.Message == "" {
						t.Error("field error has empty message")
					}
				}
			}
			if !found {
				t.Errorf("expected error on field %s, got %v", tt.wantField, formatted)
			}
		})
	}
}
