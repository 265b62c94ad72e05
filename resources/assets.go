package resources

import (
	"embed"
	"fmt"
	"path"
	"sync"

	"fyne.io/fyne/v2"
)

//go:embed logo/*.png sounds/*.wav
var assets embed.FS

var logos sync.Map

// Logo returns the named image from logo/ as a fyne resource. Resources are
// created once and shared.
func Logo(fileName string) (fyne.Resource, error) {
	assetPath := path.Join("logo", fileName)
	if cached, ok := logos.Load(assetPath); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := readAsset(assetPath)
	if err != nil {
		return nil, err
	}
	resource, _ := logos.LoadOrStore(assetPath, fyne.NewStaticResource(fileName, data))
	return resource.(fyne.Resource), nil
}

// MustLogo is Logo for images that ship with the binary.
func MustLogo(fileName string) fyne.Resource {
	resource, err := Logo(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// Sound returns the raw bytes of a file from sounds/.
func Sound(fileName string) ([]byte, error) {
	return readAsset(path.Join("sounds", fileName))
}

func readAsset(assetPath string) ([]byte, error) {
	data, err := assets.ReadFile(assetPath)
	if err != nil {
		return nil, fmt.Errorf("read asset %s: %w", assetPath, err)
	}
	return data, nil
}
