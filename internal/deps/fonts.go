package deps

import (
	"fmt"
	"os"
	"strings"

	"subburn/internal/fonts"
)

// CheckFontAssets reports whether the default subtitle font is present in
// the configured font directory. When no directory is configured the burn
// stage leaves font resolution to fontconfig, so the check passes.
func CheckFontAssets(fontDir string) Status {
	result := Status{
		Name:        "Subtitle fonts",
		Description: "Used when burning subtitles in non-Latin scripts",
		Optional:    true,
	}

	fontDir = strings.TrimSpace(fontDir)
	if fontDir == "" {
		result.Command = fonts.Default.File
		result.Available = true
		result.Detail = "resolved through fontconfig"
		return result
	}

	path := fonts.Default.AssetPath(fontDir)
	result.Command = path
	info, err := os.Stat(path)
	if err != nil {
		result.Detail = fmt.Sprintf("font %q not found", path)
		return result
	}
	if info.IsDir() {
		result.Detail = fmt.Sprintf("font %q is a directory", path)
		return result
	}
	result.Available = true
	return result
}
