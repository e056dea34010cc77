package config

import "testing"

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("testdata/does-not-exist.yaml"); err == nil {
		t.Fatal("load of a missing file should fail")
	}

	// the failure must stick across the sync.Once: a second call may not
	// hand out a nil config with a nil error
	cfg, err := Load("testdata/does-not-exist.yaml")
	if err == nil {
		t.Fatal("second load after a failed load should still report the error")
	}
	if cfg != nil {
		t.Error("failed load should not return a config")
	}
	if Get() != nil {
		t.Error("Get after a failed load should be nil")
	}
}
