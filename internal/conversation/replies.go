package conversation

import (
	"fmt"
	"strings"

	"github.com/kmahrous/salesbot/internal/catalog"
)

// Scripted customer-facing replies. All failure text stays friendly and
// never exposes internal diagnostics.
const (
	replyWelcome = "اهلا بيك 👋 احنا بنقدم خدمات زيادة متابعين ولايكات ومشاهدات لكل المنصات. قولنا محتاج ايه وهنبعتلك الاسعار على طول."

	replyClarify = "معلش مش قادر احدد الخدمة او العدد المطلوب 🙏 ممكن تكتب اسم المنصة ونوع الخدمة والعدد؟ مثال: 1000 متابع فيسبوك"

	replyLinkPrompt = "ابعت لينك الخدمة عشان نبدأ التنفيذ 🙏"

	replyLinkReceived = "تم استلام اللينك ✅ برجاء تحويل المبلغ على فودافون كاش وبعتلنا صورة التحويل."

	replyWrongLinkHint = "ملحوظة: اللينك اللي بعته شكله مش مناسب لنوع الخدمة، لو في مشكلة ابعت اللينك الصحيح وهنظبطها."

	replyStillWaiting = "لسه مستنيين التحويل منك 🙏 اول ما تحول ابعتلنا صورة الايصال."

	replyPaymentConfirmed = "تم تأكيد الدفع ✅ طلبك دخل التنفيذ وهيخلص في اقرب وقت. شكرا لثقتك فينا 🌹"
)

// formatQuote enumerates the matched offers with their prices and asks for
// the service link.
func formatQuote(offers []catalog.ServiceOffer) string {
	var b strings.Builder
	for _, offer := range offers {
		fmt.Fprintf(&b, "✅ %d %s %s", offer.Count, offer.Type, offer.Platform)
		if offer.Audience != "" {
			fmt.Fprintf(&b, " (%s)", offer.Audience)
		}
		fmt.Fprintf(&b, " = %d جنيه", offer.Price)
		if offer.Note != "" {
			fmt.Fprintf(&b, " (%s)", offer.Note)
		}
		b.WriteString("\n")
	}
	b.WriteString(replyLinkPrompt)
	return b.String()
}
