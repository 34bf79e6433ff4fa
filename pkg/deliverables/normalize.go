package deliverables

import (
	"regexp"
	"strings"
)

var (
	setOfPattern    = regexp.MustCompile(`(?i)set of\s*(\d+)`)
	nonAlnumPattern = regexp.MustCompile(`[^a-z0-9]+`)
	hyphenRuns      = regexp.MustCompile(`-+`)
)

// DeriveKey maps a free-text deliverable label plus its requested count onto
// a canonical catalog key. Matching is case-insensitive substring priority,
// first rule wins. Unrecognized labels fall through to Slugify so every input
// yields a deterministic key, even if nothing on the rate card will match it.
func DeriveKey(label string, count int) string {
	normalized := strings.ToLower(label)

	if strings.Contains(normalized, "story") {
		// A plain "3" in the label (without "single") or a count of three or
		// more suggests the 3-pack, but only counts divisible by three settle
		// on it. A "3 stories" label with count 4 still lands on the single
		// key. Kept as-is for compatibility with existing rate cards.
		if (strings.Contains(normalized, "3") && !strings.Contains(normalized, "single")) || count >= 3 {
			if count%3 == 0 {
				return KeyInstagramStoriesThree
			}
			return KeyInstagramStorySingle
		}
		return KeyInstagramStorySingle
	}

	if strings.Contains(normalized, "reel") {
		return KeyInstagramReel
	}

	if strings.Contains(normalized, "instagram") && strings.Contains(normalized, "post") {
		return KeyInstagramFeedPost
	}

	if strings.Contains(normalized, "spark") {
		return KeyTikTokSparkAd
	}

	if strings.Contains(normalized, "tiktok") {
		return KeyTikTokFeedPost
	}

	if strings.Contains(normalized, "youtube") {
		if strings.Contains(normalized, "short") {
			return KeyYouTubeShort
		}
		return KeyYouTubeVideo
	}

	if strings.Contains(normalized, "podcast") {
		return KeyPodcastHostRead
	}

	if strings.Contains(normalized, "newsletter") {
		return KeyNewsletterFeature
	}

	if strings.Contains(normalized, "blog") {
		return KeyBlogPost
	}

	return Slugify(label)
}

// Slugify lowercases and trims a label, rewrites a "set of N" phrase to
// "N-pack", and collapses every run of non-alphanumeric characters to a
// single hyphen. An empty label slugs to the empty string.
func Slugify(value string) string {
	slug := strings.TrimSpace(strings.ToLower(value))
	slug = setOfPattern.ReplaceAllString(slug, "$1-pack")
	slug = nonAlnumPattern.ReplaceAllString(slug, "-")
	slug = hyphenRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
