package conversation

import "strings"

// postSegments are path fragments that identify a single post, video,
// story or reel rather than a profile.
var postSegments = []string{
	"/p/",
	"/reel",
	"/video",
	"/story",
	"/stories",
	"/watch",
	"/post",
	"/status/",
}

// ValidLinkForService reports whether link structurally fits the ordered
// service type. Follower services need a profile link, engagement services
// need a post link, and channel subscriptions need a YouTube link. The
// check is advisory for prompting the customer, not a security boundary.
func ValidLinkForService(serviceType, link string) bool {
	serviceType = strings.ToLower(strings.TrimSpace(serviceType))
	link = strings.ToLower(strings.TrimSpace(link))
	if serviceType == "" || link == "" {
		return false
	}

	switch {
	case containsAny(serviceType, "متابع", "follower"):
		return onPlatformDomain(link) && !hasPostSegment(link)
	case containsAny(serviceType, "لايك", "مشاهد", "كومنت", "like", "view", "comment"):
		return hasPostSegment(link)
	case containsAny(serviceType, "مشترك", "عضو", "subscriber", "member"):
		return strings.Contains(link, "youtube.com") || strings.Contains(link, "youtu.be")
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func onPlatformDomain(link string) bool {
	for _, domain := range platformDomains {
		if strings.Contains(link, domain) {
			return true
		}
	}
	return false
}

func hasPostSegment(link string) bool {
	for _, segment := range postSegments {
		if strings.Contains(link, segment) {
			return true
		}
	}
	return false
}
