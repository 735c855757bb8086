package domain

import (
	"fmt"
	"strings"
)

const (
	// DefaultRegistryURL is the primary registry probed for direct
	// asset URLs
	DefaultRegistryURL = "https://open-vsx.org/api"

	// MarketplaceItemsURL is the human-facing page base for an
	// extension on the secondary registry
	MarketplaceItemsURL = "https://marketplace.visualstudio.com/items"

	// DefaultVersionToken asks the secondary registry for whatever it
	// currently serves
	DefaultVersionToken = "latest"

	// AssetExtension is the packaged extension file suffix
	AssetExtension = ".vsix"
)

// assetByNameTemplate is the secondary registry's asset-by-name
// endpoint; parameters are publisher, publisher, name, version
const assetByNameTemplate = "https://%s.gallery.vsassets.io/_apis/public/gallery/publisher/%s/extension/%s/%s/assetbyname/Microsoft.VisualStudio.Services.VSIXPackage"

// FallbackAsset describes where an extension can be fetched from the
// secondary registry and what the local file should be called
type FallbackAsset struct {
	MarketplaceURL    string
	DirectDownloadURL string
	FileName          string
}

// Synthesize builds the secondary-registry download info for an
// identifier. Pure and deterministic, no network involved; the
// identifier must be "publisher.name".
func Synthesize(id, version, fileNameOverride string) (FallbackAsset, error) {
	publisher, name, err := SplitIdentifier(id)
	if err != nil {
		return FallbackAsset{}, err
	}

	fileName := fileNameOverride
	if fileName == "" {
		fileName = strings.ReplaceAll(id, ".", "-") + AssetExtension
	}

	if version == "" {
		version = DefaultVersionToken
	}

	return FallbackAsset{
		MarketplaceURL:    fmt.Sprintf("%s/%s.%s", MarketplaceItemsURL, publisher, name),
		DirectDownloadURL: fmt.Sprintf(assetByNameTemplate, publisher, publisher, name, version),
		FileName:          fileName,
	}, nil
}
