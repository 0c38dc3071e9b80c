package imagepkg

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/youruser/tcgbuilder/internal/util"
)

// LoadCardArt resolves a card's image reference: absolute URLs are downloaded,
// anything else is read from the game's images directory.
func LoadCardArt(gamesDir, game, ref string) (image.Image, error) {
	if ref == "" {
		return nil, fmt.Errorf("card has no image")
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return DownloadImage(ref)
	}
	return imaging.Open(filepath.Join(gamesDir, game, "images", ref))
}

// DownloadImage fetches and decodes an image from a URL.
func DownloadImage(url string) (image.Image, error) {
	body, err := util.GetBytes(url)
	if err != nil {
		return nil, err
	}
	return imaging.Decode(bytes.NewReader(body))
}
