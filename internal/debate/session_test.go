package debate

import (
	"testing"
	"time"

	"github.com/smhong/meddebate/internal/oracle"
	"github.com/smhong/meddebate/pkg/models"
)

func TestNewSession_Validation(t *testing.T) {
	patient := &models.PatientContext{Symptoms: []string{"cough"}}
	o := scriptedOracle(func(req oracle.Request) (string, error) { return "", nil })

	t.Run("nil oracle rejected", func(t *testing.T) {
		if _, err := NewSession(nil, patient, DefaultConfig()); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("nil patient rejected", func(t *testing.T) {
		if _, err := NewSession(o, nil, DefaultConfig()); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("valid session gets an 8 character ID", func(t *testing.T) {
		s, err := NewSession(o, patient, DefaultConfig())
		if err != nil {
			t.Fatal(err)
		}
		if len(s.ID()) != 8 {
			t.Errorf("ID = %q, want 8 characters", s.ID())
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero max rounds", func(c *Config) { c.MaxRounds = 0 }, true},
		{"zero stagnation threshold", func(c *Config) { c.StagnationThreshold = 0 }, true},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"zero call timeout", func(c *Config) { c.CallTimeout = 0 }, true},
		{"negative call timeout", func(c *Config) { c.CallTimeout = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.validate(); (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}
