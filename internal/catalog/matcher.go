package catalog

import "strings"

// Match returns every offer the customer text could refer to, in catalog
// order. An offer matches when its platform (or the first three runes of
// it, covering truncated informal names) appears in the text together with
// its service type. A detected count narrows the result to exact-count
// offers only.
func Match(text string, offers []ServiceOffer, detectedCount *int) []ServiceOffer {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	var matched []ServiceOffer
	for _, offer := range offers {
		platform := strings.ToLower(strings.TrimSpace(offer.Platform))
		svcType := strings.ToLower(strings.TrimSpace(offer.Type))
		if platform == "" || svcType == "" {
			continue
		}

		if !strings.Contains(text, platform) && !strings.Contains(text, runePrefix(platform, 3)) {
			continue
		}
		if !strings.Contains(text, svcType) {
			continue
		}
		if detectedCount != nil && offer.Count != *detectedCount {
			continue
		}
		matched = append(matched, offer)
	}
	return matched
}

// runePrefix returns the first n runes of s. Platform names are Arabic, so
// byte slicing would split a character.
func runePrefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
