package utils

import "github.com/schollz/progressbar/v3"

// Standard progress bar descriptions
const (
	DescDownloading = "Downloading"
	DescExtracting  = "Extracting"
)

// NewProgressBar creates a consistently styled progress bar.
// Use total = -1 for unknown totals (spinner mode).
func NewProgressBar(total int64, description string) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
	}

	if total < 0 {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		opts = append(opts,
			progressbar.OptionShowBytes(true),
		)
	}

	return progressbar.NewOptions64(total, opts...)
}
