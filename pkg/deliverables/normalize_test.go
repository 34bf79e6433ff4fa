package deliverables

import "testing"

func TestDeriveKeyReels(t *testing.T) {
	for _, count := range []int{1, 2, 3, 10} {
		if got := DeriveKey("Instagram Reels", count); got != KeyInstagramReel {
			t.Fatalf("count %d: expected %q, got %q", count, KeyInstagramReel, got)
		}
	}
}

func TestDeriveKeyStories(t *testing.T) {
	cases := []struct {
		name  string
		label string
		count int
		want  string
	}{
		{"single story", "Instagram Story", 1, KeyInstagramStorySingle},
		{"two stories", "Instagram Story", 2, KeyInstagramStorySingle},
		{"three stories", "Instagram Story", 3, KeyInstagramStoriesThree},
		{"six stories", "Story set", 6, KeyInstagramStoriesThree},
		{"labeled 3-pack count divisible", "Instagram Story (3-pack)", 3, KeyInstagramStoriesThree},
		{"labeled 3-pack count indivisible", "Instagram Story (3-pack)", 4, KeyInstagramStorySingle},
		{"labeled single with 3", "Instagram Story (single)", 1, KeyInstagramStorySingle},
		{"count five", "Story set", 5, KeyInstagramStorySingle},
		// The match is on the singular substring, so a plural-only label
		// falls through to the slug regardless of count.
		{"plural-only label", "Instagram Stories", 2, "instagram-stories"},
		{"plural-only label divisible count", "Instagram Stories", 3, "instagram-stories"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveKey(tc.label, tc.count); got != tc.want {
				t.Fatalf("DeriveKey(%q, %d) = %q, want %q", tc.label, tc.count, got, tc.want)
			}
		})
	}
}

func TestDeriveKeyPriorityOrder(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"Instagram Feed Post", KeyInstagramFeedPost},
		{"TikTok Spark Ad", KeyTikTokSparkAd},
		{"TikTok Feed Post", KeyTikTokFeedPost},
		{"YouTube Video", KeyYouTubeVideo},
		{"YouTube Short", KeyYouTubeShort},
		{"Podcast Host Read", KeyPodcastHostRead},
		{"Newsletter Feature", KeyNewsletterFeature},
		{"Blog Post", KeyBlogPost},
		// "reel" outranks "instagram"+"post"
		{"Instagram Reel post", KeyInstagramReel},
		// "spark" outranks "tiktok"
		{"TikTok Spark", KeyTikTokSparkAd},
	}
	for _, tc := range cases {
		if got := DeriveKey(tc.label, 1); got != tc.want {
			t.Errorf("DeriveKey(%q) = %q, want %q", tc.label, got, tc.want)
		}
	}
}

func TestDeriveKeySlugFallback(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"Set of 5 Pins", "5-pack-pins"},
		{"Twitch Stream!!", "twitch-stream"},
		{"  Custom   Integration  ", "custom-integration"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := DeriveKey(tc.label, 1); got != tc.want {
			t.Errorf("DeriveKey(%q) = %q, want %q", tc.label, got, tc.want)
		}
	}
}

func TestPackSizeFor(t *testing.T) {
	if got := PackSizeFor(KeyInstagramStoriesThree); got != 3 {
		t.Fatalf("expected pack size 3, got %d", got)
	}
	if got := PackSizeFor(KeyInstagramReel); got != 1 {
		t.Fatalf("expected pack size 1, got %d", got)
	}
	if got := PackSizeFor("5-pack-pins"); got != 1 {
		t.Fatalf("expected default pack size 1 for unknown key, got %d", got)
	}
}

func TestCatalogKeysUnique(t *testing.T) {
	seen := map[string]string{}
	for _, preset := range Presets {
		if prev, ok := seen[preset.DeliverableKey]; ok {
			t.Errorf("duplicate key %q on %q and %q", preset.DeliverableKey, prev, preset.Label)
		}
		seen[preset.DeliverableKey] = preset.Label
	}
}
