package conversation

import "context"

// ChatRole identifies who authored a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
	ChatRoleSystem    ChatRole = "system"
)

// ChatMessage is one turn handed to the language model.
type ChatMessage struct {
	Role    ChatRole
	Content string
}

// LLMRequest is a completion request for the delegated assistant.
type LLMRequest struct {
	System      []string
	Messages    []ChatMessage
	MaxTokens   int32
	Temperature float32
}

// LLMResponse is the assistant's completion.
type LLMResponse struct {
	Text       string
	StopReason string
}

// LLMClient abstracts the language model the engine delegates to when it
// has no deterministic reply.
type LLMClient interface {
	Complete(ctx context.Context, req LLMRequest) (LLMResponse, error)
}

// assistantSystemPrompt frames the model as the reseller's sales agent.
const assistantSystemPrompt = `انت مساعد مبيعات ودود لخدمات زيادة المتابعين واللايكات والمشاهدات على السوشيال ميديا.
رد بالعربي المصري وباختصار. لو العميل بيسأل عن خدمة او سعر وجهه انه يكتب اسم المنصة ونوع الخدمة والعدد.
ماتوعدش بحاجة خارج الخدمات المعروضة وماتذكرش اي تفاصيل تقنية داخلية.`
