package backend

import (
	"context"
	"path/filepath"
	"testing"
)

func TestTypeIsValid(t *testing.T) {
	tests := []struct {
		backendType Type
		want        bool
	}{
		{CSVBackend, true},
		{SQLiteBackend, true},
		{Type(""), false},
		{Type("postgres"), false},
		{Type("CSV"), false},
	}

	for _, tt := range tests {
		if got := tt.backendType.IsValid(); got != tt.want {
			t.Errorf("Type(%q).IsValid() = %v, want %v", tt.backendType, got, tt.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid csv",
			config:  Config{Type: CSVBackend, CSVPath: "data/rates.csv"},
			wantErr: false,
		},
		{
			name:    "valid sqlite",
			config:  Config{Type: SQLiteBackend, SQLiteDBPath: "data/rates.db"},
			wantErr: false,
		},
		{
			name:    "csv without path",
			config:  Config{Type: CSVBackend},
			wantErr: true,
		},
		{
			name:    "sqlite without path",
			config:  Config{Type: SQLiteBackend},
			wantErr: true,
		},
		{
			name:    "unknown type",
			config:  Config{Type: Type("redis")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateStore_CSV(t *testing.T) {
	factory := NewFactory(nil)

	result, err := factory.CreateStore(context.Background(), Config{
		Type:    CSVBackend,
		CSVPath: filepath.Join(t.TempDir(), "rates.csv"),
	})
	if err != nil {
		t.Fatalf("CreateStore() error = %v", err)
	}
	if result.Store == nil {
		t.Fatal("CreateStore() returned nil store")
	}
	// The CSV backend holds no resources needing cleanup.
	if result.Cleanup != nil {
		t.Error("CreateStore() returned unexpected cleanup for csv backend")
	}
}

func TestCreateStore_SQLite(t *testing.T) {
	factory := NewFactory(nil)

	result, err := factory.CreateStore(context.Background(), Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "rates.db"),
	})
	if err != nil {
		t.Fatalf("CreateStore() error = %v", err)
	}
	if result.Store == nil {
		t.Fatal("CreateStore() returned nil store")
	}
	if result.Cleanup == nil {
		t.Fatal("CreateStore() returned no cleanup for sqlite backend")
	}
	if err := result.Cleanup(); err != nil {
		t.Errorf("Cleanup() error = %v", err)
	}
}

func TestCreateStore_InvalidConfig(t *testing.T) {
	factory := NewFactory(nil)

	if _, err := factory.CreateStore(context.Background(), Config{Type: Type("redis")}); err == nil {
		t.Fatal("CreateStore() with invalid config succeeded")
	}
}
