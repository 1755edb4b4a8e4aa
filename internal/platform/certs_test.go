package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupCABundle(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv(EnvSSLCertFile, "")
	t.Setenv(EnvCurlCABundle, "")
	os.Unsetenv(EnvSSLCertFile)
	os.Unsetenv(EnvCurlCABundle)

	bundlePath, err := SetupCABundle(tempDir)
	if err != nil {
		t.Fatalf("SetupCABundle failed: %v", err)
	}

	if filepath.Base(bundlePath) != CertBundleFileName {
		t.Errorf("Expected bundle file %s, got %s", CertBundleFileName, bundlePath)
	}

	data, err := os.ReadFile(bundlePath)
	if err != nil {
		t.Fatalf("Failed to read bundle: %v", err)
	}
	if !strings.Contains(string(data), "BEGIN CERTIFICATE") {
		t.Error("Bundle does not look like PEM data")
	}

	if os.Getenv(EnvSSLCertFile) != bundlePath {
		t.Errorf("SSL_CERT_FILE = %q, expected %q", os.Getenv(EnvSSLCertFile), bundlePath)
	}
	if os.Getenv(EnvCurlCABundle) != bundlePath {
		t.Errorf("CURL_CA_BUNDLE = %q, expected %q", os.Getenv(EnvCurlCABundle), bundlePath)
	}
}

func TestSetupCABundle_RespectsExistingEnv(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv(EnvSSLCertFile, "/etc/ssl/custom.pem")
	t.Setenv(EnvCurlCABundle, "/etc/ssl/custom.pem")

	if _, err := SetupCABundle(tempDir); err != nil {
		t.Fatalf("SetupCABundle failed: %v", err)
	}

	if got := os.Getenv(EnvSSLCertFile); got != "/etc/ssl/custom.pem" {
		t.Errorf("SSL_CERT_FILE was overridden: %q", got)
	}
}
