package conversation

import "strings"

// platformDomains are social-network hostnames that mark a message as a
// service link even without an explicit scheme.
var platformDomains = []string{
	"facebook.com",
	"fb.com",
	"instagram.com",
	"tiktok.com",
	"youtube.com",
	"youtu.be",
	"twitter.com",
	"x.com",
	"t.me",
}

// paymentKeywords are customer phrasings that claim a transfer was made.
var paymentKeywords = []string{
	"حولت",
	"تم التحويل",
	"حولتلك",
	"دفعت",
	"تم الدفع",
	"اتحول",
	"transferred",
	"paid",
}

// imageSentinels mark a text-only message as standing in for an image.
var imageSentinels = []string{"صورة", "image"}

// ClassifyMessage tags one inbound message. Rules are checked in order and
// the first match wins: link, payment claim, image, plain text.
func ClassifyMessage(text, attachmentHint string) MessageType {
	normalized := strings.ToLower(strings.TrimSpace(text))

	if strings.HasPrefix(normalized, "http://") || strings.HasPrefix(normalized, "https://") {
		return MessageTypeLink
	}
	for _, domain := range platformDomains {
		if strings.Contains(normalized, domain) {
			return MessageTypeLink
		}
	}

	for _, keyword := range paymentKeywords {
		if strings.Contains(normalized, keyword) {
			return MessageTypePayment
		}
	}

	if strings.HasPrefix(strings.ToLower(attachmentHint), "image") {
		return MessageTypeImage
	}
	for _, sentinel := range imageSentinels {
		if normalized == sentinel {
			return MessageTypeImage
		}
	}

	return MessageTypeText
}
