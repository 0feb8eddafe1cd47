package avatar

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

const avatarRequestTimeout = 10 * time.Second

// Traits describe the avatar a player configured during profile creation
type Traits struct {
	Gender    string
	HairColor string
	HairStyle string
	SkinTone  string
	EyeColor  string
	Age       int
}

// Generator fetches avatar images from an external avatar API and caches
// them on disk. Identical trait sets map to the same cached file, so a
// profile edit that keeps the look costs no network call.
type Generator struct {
	apiURL   string
	apiKey   string
	cacheDir string
	client   *http.Client
}

// NewGenerator creates a new avatar generator
func NewGenerator(apiURL, apiKey, cacheDir string) *Generator {
	return &Generator{
		apiURL:   apiURL,
		apiKey:   apiKey,
		cacheDir: cacheDir,
		client:   &http.Client{Timeout: avatarRequestTimeout},
	}
}

// Generate fetches the avatar for the given traits and returns the cached
// filename (not the full path).
func (g *Generator) Generate(traits Traits) (string, error) {
	filename := fmt.Sprintf("avatar_%s.png", traitsDigest(traits))
	path := filepath.Join(g.cacheDir, filename)

	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := os.MkdirAll(g.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create avatar cache dir: %w", err)
	}

	if err := g.fetch(traits, path); err != nil {
		return "", fmt.Errorf("failed to generate avatar: %w", err)
	}

	return filename, nil
}

// Delete removes a cached avatar file
func (g *Generator) Delete(filename string) error {
	path := filepath.Join(g.cacheDir, filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(path)
}

func (g *Generator) fetch(traits Traits, outputPath string) error {
	params := url.Values{}
	params.Set("seed", traitsDigest(traits))
	params.Set("gender", traits.Gender)
	params.Set("hairColor", traits.HairColor)
	params.Set("hairStyle", traits.HairStyle)
	params.Set("skinTone", traits.SkinTone)
	params.Set("eyeColor", traits.EyeColor)
	params.Set("age", fmt.Sprintf("%d", traits.Age))

	fullURL := g.apiURL + "?" + params.Encode()

	ctx, cancel := context.WithTimeout(context.Background(), avatarRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch avatar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		return fmt.Errorf("failed to write avatar file: %w", err)
	}
	return nil
}

// traitsDigest derives a stable cache key from the trait set
func traitsDigest(traits Traits) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%s|%s|%d",
		traits.Gender, traits.HairColor, traits.HairStyle,
		traits.SkinTone, traits.EyeColor, traits.Age)))
	return hex.EncodeToString(sum[:8])
}
