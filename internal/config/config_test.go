package config

import (
	"os"
	"testing"
	"time"
)

func TestGetEnvOrDefault(t *testing.T) {
	key := "TEST_ENV_VAR"
	originalValue := os.Getenv(key)
	defer func() {
		if originalValue != "" {
			os.Setenv(key, originalValue)
		} else {
			os.Unsetenv(key)
		}
	}()

	tests := []struct {
		name         string
		setValue     string
		defaultValue string
		expected     string
	}{
		{"env set", "test-value", "default", "test-value"},
		{"env not set", "", "default", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setValue != "" {
				os.Setenv(key, tt.setValue)
			} else {
				os.Unsetenv(key)
			}
			result := getEnvOrDefault(key, tt.defaultValue)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestGetIntEnvOrDefault(t *testing.T) {
	key := "TEST_INT_ENV_VAR"
	originalValue := os.Getenv(key)
	defer func() {
		if originalValue != "" {
			os.Setenv(key, originalValue)
		} else {
			os.Unsetenv(key)
		}
	}()

	tests := []struct {
		name         string
		setValue     string
		defaultValue int
		expected     int
	}{
		{"valid int", "14", 7, 14},
		{"zero allowed", "0", 7, 0},
		{"negative rejected", "-3", 7, 7},
		{"invalid", "abc", 7, 7},
		{"env not set", "", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setValue != "" {
				os.Setenv(key, tt.setValue)
			} else {
				os.Unsetenv(key)
			}
			result := getIntEnvOrDefault(key, tt.defaultValue)
			if result != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestGetFloatEnvOrDefault(t *testing.T) {
	key := "TEST_FLOAT_ENV_VAR"
	originalValue := os.Getenv(key)
	defer func() {
		if originalValue != "" {
			os.Setenv(key, originalValue)
		} else {
			os.Unsetenv(key)
		}
	}()

	tests := []struct {
		name         string
		setValue     string
		defaultValue float64
		expected     float64
	}{
		{"valid float", "12.5", 10.0, 12.5},
		{"invalid float", "invalid", 10.0, 10.0},
		{"env not set", "", 10.0, 10.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setValue != "" {
				os.Setenv(key, tt.setValue)
			} else {
				os.Unsetenv(key)
			}
			result := getFloatEnvOrDefault(key, tt.defaultValue)
			if result != tt.expected {
				t.Errorf("Expected %f, got %f", tt.expected, result)
			}
		})
	}
}

func TestGetDurationEnvOrDefault(t *testing.T) {
	key := "TEST_DURATION_ENV_VAR"
	originalValue := os.Getenv(key)
	defer func() {
		if originalValue != "" {
			os.Setenv(key, originalValue)
		} else {
			os.Unsetenv(key)
		}
	}()

	tests := []struct {
		name         string
		setValue     string
		defaultValue time.Duration
		expected     time.Duration
	}{
		{"valid duration", "30m", time.Hour, 30 * time.Minute},
		{"invalid duration", "soon", time.Hour, time.Hour},
		{"env not set", "", time.Hour, time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setValue != "" {
				os.Setenv(key, tt.setValue)
			} else {
				os.Unsetenv(key)
			}
			result := getDurationEnvOrDefault(key, tt.defaultValue)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestReload(t *testing.T) {
	key := "MONITORCHUVA_RAIN_THRESHOLD_MM"
	originalValue := os.Getenv(key)
	originalThreshold := RainThresholdMM
	defer func() {
		if originalValue != "" {
			os.Setenv(key, originalValue)
		} else {
			os.Unsetenv(key)
		}
		Reload()
		if RainThresholdMM != originalThreshold {
			t.Errorf("Reload did not restore threshold, got %f", RainThresholdMM)
		}
	}()

	os.Setenv(key, "25.5")
	Reload()
	if RainThresholdMM != 25.5 {
		t.Errorf("Expected threshold 25.5 after Reload, got %f", RainThresholdMM)
	}
}

func TestGetServerAddress_Default(t *testing.T) {
	originalAddr := os.Getenv("MONITORCHUVA_SERVER_ADDR")
	originalPort := os.Getenv("PORT")
	os.Unsetenv("MONITORCHUVA_SERVER_ADDR")
	os.Unsetenv("PORT")
	defer func() {
		if originalAddr != "" {
			os.Setenv("MONITORCHUVA_SERVER_ADDR", originalAddr)
		}
		if originalPort != "" {
			os.Setenv("PORT", originalPort)
		}
	}()

	if addr := GetServerAddress(); addr != "127.0.0.1:3000" {
		t.Errorf("GetServerAddress() = %q, want 127.0.0.1:3000", addr)
	}
}

func TestGetUserAgent(t *testing.T) {
	ua := GetUserAgent()
	if ua == "" {
		t.Error("GetUserAgent() should not be empty")
	}
	if ua[:12] != "Monitorchuva" {
		t.Errorf("GetUserAgent() = %q", ua)
	}
}
