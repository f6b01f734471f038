package model

import (
	"math"
	"testing"
)

func fittedWeights() *ModelWeights {
	return &ModelWeights{
		ModelType:    "LogisticRegression",
		Version:      "1.0",
		Coefficients: []float64{0.8, -1.2, 0.35},
		Intercept:    -2.5,
		Features:     []string{"age", "marital_status", "income"},
		IsFitted:     true,
	}
}

func TestModelWeightsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(mw *ModelWeights)
		wantErr bool
	}{
		{"valid", func(mw *ModelWeights) {}, false},
		{"missing model type", func(mw *ModelWeights) { mw.ModelType = "" }, true},
		{"missing version", func(mw *ModelWeights) { mw.Version = "" }, true},
		{"fitted without coefficients", func(mw *ModelWeights) { mw.Coefficients = nil }, true},
		{"unfitted with coefficients", func(mw *ModelWeights) { mw.IsFitted = false }, true},
		{"feature count mismatch", func(mw *ModelWeights) { mw.Features = []string{"age"} }, true},
		{"no feature names is allowed", func(mw *ModelWeights) { mw.Features = nil }, false},
		{"NaN coefficient", func(mw *ModelWeights) { mw.Coefficients[1] = math.NaN() }, true},
		{"Inf intercept", func(mw *ModelWeights) { mw.Intercept = math.Inf(1) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := fittedWeights()
			tt.mutate(mw)
			err := mw.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestModelWeightsJSONRoundTrip(t *testing.T) {
	mw := fittedWeights()
	mw.Hyperparameters = map[string]interface{}{"C": 1.0}

	data, err := mw.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	var back ModelWeights
	if err := back.FromJSON(data); err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if back.ModelType != mw.ModelType || back.Intercept != mw.Intercept {
		t.Errorf("round trip lost scalar fields: %+v", back)
	}
	if len(back.Coefficients) != 3 || back.Coefficients[1] != -1.2 {
		t.Errorf("Coefficients = %v, want %v", back.Coefficients, mw.Coefficients)
	}
	if len(back.Features) != 3 || back.Features[0] != "age" {
		t.Errorf("Features = %v, want %v", back.Features, mw.Features)
	}

	if err := back.FromJSON([]byte("{not json")); err == nil {
		t.Error("malformed JSON should fail to decode")
	}
}

func TestModelWeightsClone(t *testing.T) {
	mw := fittedWeights()
	mw.Metadata = map[string]interface{}{"auc": 0.78}

	clone := mw.Clone()
	clone.Coefficients[0] = 99
	clone.Features[0] = "changed"
	clone.Metadata["auc"] = 0.0

	// クローンの変更が元に波及しないこと
	if mw.Coefficients[0] != 0.8 {
		t.Error("Clone() shares the coefficient slice")
	}
	if mw.Features[0] != "age" {
		t.Error("Clone() shares the feature slice")
	}
	if mw.Metadata["auc"] != 0.78 {
		t.Error("Clone() shares the metadata map")
	}
}
