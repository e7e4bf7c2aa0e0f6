package messaging

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// FirstImageURL extracts the first image attachment from a Twilio webhook
// form. A missing or non-image attachment resolves to empty strings, which
// downstream treats exactly like "no image".
func FirstImageURL(form url.Values) (mediaURL, contentType string) {
	numMedia, err := strconv.Atoi(form.Get("NumMedia"))
	if err != nil || numMedia <= 0 {
		return "", ""
	}

	for i := 0; i < numMedia; i++ {
		ct := form.Get(fmt.Sprintf("MediaContentType%d", i))
		if !strings.HasPrefix(strings.ToLower(ct), "image") {
			continue
		}
		u := form.Get(fmt.Sprintf("MediaUrl%d", i))
		if u == "" {
			continue
		}
		return u, ct
	}
	return "", ""
}
