package conversation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kmahrous/salesbot/internal/session"
)

// priceKeywords cover price questions, platform names and service nouns.
// Any of them signals a price/service inquiry.
var priceKeywords = []string{
	"بكام",
	"كام",
	"سعر",
	"السعر",
	"الاسعار",
	"عايز",
	"عاوز",
	"محتاج",
	"price",
	"فيسبوك",
	"فيس",
	"انستجرام",
	"انستا",
	"تيك توك",
	"تيكتوك",
	"يوتيوب",
	"تويتر",
	"تليجرام",
	"متابع",
	"متابعين",
	"لايك",
	"لايكات",
	"مشاهدة",
	"مشاهدات",
	"مشترك",
	"مشتركين",
	"كومنت",
	"كومنتات",
	"اعضاء",
	"اعلان",
	"اشتراك",
}

// agreementKeywords signal the customer confirming an order.
var agreementKeywords = []string{
	"تمام",
	"ماشي",
	"موافق",
	"اوك",
	"اوكي",
	"يلا",
	"اتفقنا",
	"ok",
	"okay",
}

// durationKeywords signal a turnaround-time question.
var durationKeywords = []string{
	"امتى",
	"المدة",
	"قد ايه",
	"كم يوم",
	"هيخلص",
	"يستغرق",
	"خلال قد",
}

var countPattern = regexp.MustCompile(`[0-9]{2,6}`)

// easternDigits maps Arabic-Indic digits to their ASCII forms so count
// extraction works however the customer types numbers.
var easternDigits = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
)

// DetectIntent maps one message to a symbolic intent. Extracting a count
// is the only side effect: a run of 2-6 digits overwrites
// sess.DetectedCount, and the prior value survives when no run is found.
func DetectIntent(text string, sess *session.Session, msgType MessageType) Intent {
	if msgType == MessageTypeImage && sess.Status == session.StatusWaitingPayment {
		return IntentConfirmPayment
	}
	if msgType == MessageTypePayment {
		return IntentConfirmPayment
	}
	if msgType == MessageTypeLink {
		return IntentSendLink
	}

	normalized := strings.ToLower(strings.TrimSpace(easternDigits.Replace(text)))

	if raw := countPattern.FindString(normalized); raw != "" {
		if count, err := strconv.Atoi(raw); err == nil {
			sess.DetectedCount = &count
		}
	}

	for _, keyword := range priceKeywords {
		if strings.Contains(normalized, keyword) {
			return IntentAskPrice
		}
	}
	for _, keyword := range agreementKeywords {
		if strings.Contains(normalized, keyword) {
			return IntentConfirmOrder
		}
	}
	for _, keyword := range durationKeywords {
		if strings.Contains(normalized, keyword) {
			return IntentAskDuration
		}
	}
	return IntentFollowup
}
