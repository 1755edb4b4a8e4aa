package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/breml/rootcerts/embedded"
)

// Certificate bundle constants. yt-dlp (through Python's ssl module and
// curl-style tooling) honors these environment variables, which works
// around platforms where the system trust store is missing or stale.
const (
	CertBundleFileName = "cacert.pem"
	EnvSSLCertFile     = "SSL_CERT_FILE"
	EnvCurlCABundle    = "CURL_CA_BUNDLE"
)

// File permissions for the exported bundle
const certBundlePermissions = 0644

// SetupCABundle writes the embedded Mozilla CA bundle into dir and points
// SSL_CERT_FILE / CURL_CA_BUNDLE at it so the yt-dlp subprocess inherits a
// usable trust store. Variables already set by the user are left alone.
// Returns the bundle path.
func SetupCABundle(dir string) (string, error) {
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("failed to create certificate directory: %w", err)
	}

	bundlePath := filepath.Join(dir, CertBundleFileName)
	pem := embedded.MozillaCACertificatesPEM()
	if err := os.WriteFile(bundlePath, []byte(pem), certBundlePermissions); err != nil {
		return "", fmt.Errorf("failed to write CA bundle: %w", err)
	}

	for _, key := range []string{EnvSSLCertFile, EnvCurlCABundle} {
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, bundlePath); err != nil {
				return "", fmt.Errorf("failed to set %s: %w", key, err)
			}
		}
	}

	return bundlePath, nil
}
