// Package deliverables maps free-text deliverable labels from creative briefs
// onto the canonical catalog keys the rate card prices against.
package deliverables

// Preset is one canonical deliverable type in the static catalog.
type Preset struct {
	Label          string
	DeliverableKey string
	PackSize       int
}

// Canonical deliverable keys.
const (
	KeyInstagramFeedPost     = "instagram-feed-post"
	KeyInstagramReel         = "instagram-reel"
	KeyInstagramStorySingle  = "instagram-story-single"
	KeyInstagramStoriesThree = "instagram-stories-3"
	KeyTikTokFeedPost        = "tiktok-feed-post"
	KeyTikTokSparkAd         = "tiktok-spark-ad"
	KeyYouTubeVideo          = "youtube-video"
	KeyYouTubeShort          = "youtube-short"
	KeyPodcastHostRead       = "podcast-host-read"
	KeyNewsletterFeature     = "newsletter-feature"
	KeyBlogPost              = "blog-post"
)

// Presets is the static catalog. Pack sizing lives here, not on the rate
// card, so creators editing prices cannot change how packs bill.
var Presets = []Preset{
	{Label: "Instagram Feed Post", DeliverableKey: KeyInstagramFeedPost, PackSize: 1},
	{Label: "Instagram Reel", DeliverableKey: KeyInstagramReel, PackSize: 1},
	{Label: "Instagram Story (single)", DeliverableKey: KeyInstagramStorySingle, PackSize: 1},
	{Label: "Instagram Stories (3-pack)", DeliverableKey: KeyInstagramStoriesThree, PackSize: 3},
	{Label: "TikTok Feed Post", DeliverableKey: KeyTikTokFeedPost, PackSize: 1},
	{Label: "TikTok Spark Ad", DeliverableKey: KeyTikTokSparkAd, PackSize: 1},
	{Label: "YouTube Video", DeliverableKey: KeyYouTubeVideo, PackSize: 1},
	{Label: "YouTube Short", DeliverableKey: KeyYouTubeShort, PackSize: 1},
	{Label: "Podcast Host Read", DeliverableKey: KeyPodcastHostRead, PackSize: 1},
	{Label: "Newsletter Feature", DeliverableKey: KeyNewsletterFeature, PackSize: 1},
	{Label: "Blog Post", DeliverableKey: KeyBlogPost, PackSize: 1},
}

// PresetFor returns the catalog entry for a key, or false when the key is not
// in the catalog (slugified fallback keys never are).
func PresetFor(key string) (Preset, bool) {
	for _, preset := range Presets {
		if preset.DeliverableKey == key {
			return preset, true
		}
	}
	return Preset{}, false
}

// PackSizeFor returns the catalog pack size for a key, defaulting to 1 for
// unknown keys.
func PackSizeFor(key string) int {
	if preset, ok := PresetFor(key); ok && preset.PackSize > 1 {
		return preset.PackSize
	}
	return 1
}
