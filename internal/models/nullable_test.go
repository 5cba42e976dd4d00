package models

import (
	"encoding/json"
	"testing"
)

func TestNullableFloat_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantSet   bool
		wantValid bool
		wantValue float64
	}{
		{
			name:      "field present with numeric value",
			json:      `{"target": 8000}`,
			wantSet:   true,
			wantValid: true,
			wantValue: 8000,
		},
		{
			name:      "field present with null value",
			json:      `{"target": null}`,
			wantSet:   true,
			wantValid: false,
			wantValue: 0,
		},
		{
			name:      "field absent",
			json:      `{}`,
			wantSet:   false,
			wantValid: false,
			wantValue: 0,
		},
		{
			name:      "field present with zero",
			json:      `{"target": 0}`,
			wantSet:   true,
			wantValid: true,
			wantValue: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result struct {
				Target NullableFloat `json:"target"`
			}
			err := json.Unmarshal([]byte(tt.json), &result)
			if err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}

			if result.Target.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", result.Target.Set, tt.wantSet)
			}
			if result.Target.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", result.Target.Valid, tt.wantValid)
			}
			if result.Target.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", result.Target.Value, tt.wantValue)
			}
		})
	}
}

func TestNullableFloat_ToPtr(t *testing.T) {
	valid := NullableFloat{Value: 7.5, Valid: true, Set: true}
	if ptr := valid.ToPtr(); ptr == nil || *ptr != 7.5 {
		t.Errorf("ToPtr() = %v, want pointer to 7.5", ptr)
	}

	null := NullableFloat{Set: true}
	if ptr := null.ToPtr(); ptr != nil {
		t.Errorf("ToPtr() on null = %v, want nil", ptr)
	}
}

func TestNullableBool_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantSet   bool
		wantValid bool
		wantValue bool
	}{
		{
			name:      "field present with true",
			json:      `{"enabled": true}`,
			wantSet:   true,
			wantValid: true,
			wantValue: true,
		},
		{
			name:      "field present with false",
			json:      `{"enabled": false}`,
			wantSet:   true,
			wantValid: true,
			wantValue: false,
		},
		{
			name:      "field present with null",
			json:      `{"enabled": null}`,
			wantSet:   true,
			wantValid: false,
			wantValue: false,
		},
		{
			name:      "field absent",
			json:      `{}`,
			wantSet:   false,
			wantValid: false,
			wantValue: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result struct {
				Enabled NullableBool `json:"enabled"`
			}
			err := json.Unmarshal([]byte(tt.json), &result)
			if err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}

			if result.Enabled.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", result.Enabled.Set, tt.wantSet)
			}
			if result.Enabled.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", result.Enabled.Valid, tt.wantValid)
			}
			if result.Enabled.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", result.Enabled.Value, tt.wantValue)
			}
		})
	}
}

func TestNullableFloat_MarshalJSON(t *testing.T) {
	payload := struct {
		Target NullableFloat `json:"target"`
	}{Target: NullableFloat{Value: 10000, Valid: true, Set: true}}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `{"target":10000}` {
		t.Errorf("Marshal = %s, want {\"target\":10000}", data)
	}

	payload.Target = NullableFloat{Set: true}
	data, err = json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `{"target":null}` {
		t.Errorf("Marshal = %s, want {\"target\":null}", data)
	}
}
